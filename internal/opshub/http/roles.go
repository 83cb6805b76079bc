package http

import (
	"net/http"

	"github.com/aussiebroadwan/opshub/internal/opshub/domain"
	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// HandleList godoc
//
//	@Summary		List Roles
//	@Description	List all roles ordered by code, with the number of users holding each.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{array}	opshubsdk.Role
//	@Router			/v1/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "failed to list roles")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(roles, toRole))
}

// HandleCreate godoc
//
//	@Summary		Create Role
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor-ID	header		string						false	"Acting user id, recorded in the audit log"
//	@Param			request		body		opshubsdk.CreateRoleRequest	true	"code, name, description, type"
//	@Success		201			{object}	opshubsdk.Role
//	@Failure		400			{object}	opshubsdk.ErrorResponse	"invalid role"
//	@Failure		409			{object}	opshubsdk.ErrorResponse	"role code already exists"
//	@Router			/v1/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req opshubsdk.CreateRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	role, err := h.RolesService.Create(r.Context(), service.CreateRoleInput{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.RoleType(req.Type),
	})
	if err != nil {
		writeServiceError(w, r, err, "failed to create role")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toRole(role))
}

// HandleUpdate godoc
//
//	@Summary		Update Role
//	@Description	Update name, description or type. Omitted fields are unchanged; an empty description clears it.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor-ID	header		string						false	"Acting user id, recorded in the audit log"
//	@Param			id			path		string						true	"Role id"
//	@Param			request		body		opshubsdk.UpdateRoleRequest	true	"name, description, type"
//	@Success		200			{object}	opshubsdk.Role
//	@Failure		400			{object}	opshubsdk.ErrorResponse	"invalid field"
//	@Failure		404			{object}	opshubsdk.ErrorResponse	"role not found"
//	@Router			/v1/roles/{id} [patch].
func (h *RolesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req opshubsdk.UpdateRoleRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	patch := domain.RolePatch{Name: req.Name, Description: req.Description}
	if req.Type != nil {
		t := domain.RoleType(*req.Type)
		patch.Type = &t
	}

	role, err := h.RolesService.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err, "failed to update role")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toRole(role))
}

// HandleDelete godoc
//
//	@Summary		Delete Role
//	@Description	Delete a role no user holds. The default role cannot be deleted.
//	@Tags			Roles
//	@Param			X-Actor-ID	header	string	false	"Acting user id, recorded in the audit log"
//	@Param			id			path	string	true	"Role id"
//	@Success		204
//	@Failure		400	{object}	opshubsdk.ErrorResponse	"role still assigned or is the default role"
//	@Failure		404	{object}	opshubsdk.ErrorResponse	"role not found"
//	@Router			/v1/roles/{id} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RolesService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err, "failed to delete role")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
