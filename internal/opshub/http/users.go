package http

import (
	"net/http"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List Users
//	@Description	List every user with role ids, most recently updated first.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}	opshubsdk.User
//	@Router			/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list users")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(users, toUser))
}

// HandleUpdateStatus godoc
//
//	@Summary		Update User Status
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor-ID	header		string								false	"Acting user id, recorded in the audit log"
//	@Param			id			path		string								true	"User id"
//	@Param			request		body		opshubsdk.UpdateUserStatusRequest	true	"ACTIVE, INACTIVE or PENDING"
//	@Success		200			{object}	opshubsdk.User
//	@Failure		400			{object}	opshubsdk.ErrorResponse	"invalid status"
//	@Failure		404			{object}	opshubsdk.ErrorResponse	"user not found"
//	@Router			/v1/users/{id}/status [patch].
func (h *UsersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req opshubsdk.UpdateUserStatusRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	user, err := h.UserService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err, "failed to update user status")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleSetRoles godoc
//
//	@Summary		Replace User Roles
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor-ID	header		string							false	"Acting user id, recorded in the audit log"
//	@Param			id			path		string							true	"User id"
//	@Param			request		body		opshubsdk.SetUserRolesRequest	true	"role_ids"
//	@Success		200			{object}	opshubsdk.User
//	@Failure		400			{object}	opshubsdk.ErrorResponse	"invalid role ids"
//	@Failure		404			{object}	opshubsdk.ErrorResponse	"user or role not found"
//	@Router			/v1/users/{id}/roles [put].
func (h *UsersHandler) HandleSetRoles(w http.ResponseWriter, r *http.Request) {
	var req opshubsdk.SetUserRolesRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}
	if req.RoleIDs == nil {
		writeBadRequest(w, "role_ids is required")
		return
	}

	user, err := h.UserService.SetRoles(r.Context(), r.PathValue("id"), req.RoleIDs)
	if err != nil {
		writeServiceError(w, r, err, "failed to set user roles")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}
