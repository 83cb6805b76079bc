package http

import (
	"net/http"

	"github.com/aussiebroadwan/opshub/internal/opshub/service"
	"github.com/aussiebroadwan/opshub/pkg/httpx"
	"github.com/aussiebroadwan/opshub/pkg/opshubsdk"
)

type InviteIssueHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Issue Invitation Endpoint
//	@Description	Create a single-use invite for an email address that has no account yet.
//	@Description	The raw token is only returned inside invite_url.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			X-Actor-ID	header		string							false	"Acting user id, recorded in the audit log"
//	@Param			request		body		opshubsdk.IssueInviteRequest	true	"email"
//	@Success		201			{object}	opshubsdk.IssueInviteResponse	"invite_url, expires_at"
//	@Failure		400			{object}	opshubsdk.ErrorResponse			"invalid email"
//	@Failure		409			{object}	opshubsdk.ErrorResponse			"email already registered"
//	@Failure		500			{object}	opshubsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/invite [post].
func (h *InviteIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req opshubsdk.IssueInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	issued, err := h.InviteService.Issue(r.Context(), req.Email)
	if err != nil {
		writeServiceError(w, r, err, "failed to issue invite")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, opshubsdk.IssueInviteResponse{
		InviteURL: issued.InviteURL,
		ExpiresAt: issued.ExpiresAt,
	})
}

type InviteVerifyHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Verify Invitation Endpoint
//	@Description	Check that an invite token can still be redeemed. The token is not consumed.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string							true	"Invite token from invite_url"
//	@Success		200		{object}	opshubsdk.VerifyInviteResponse	"email, expires_at"
//	@Failure		400		{object}	opshubsdk.ErrorResponse			"missing token, or token used, superseded or expired"
//	@Failure		404		{object}	opshubsdk.ErrorResponse			"unknown token"
//	@Router			/v1/users/invites/verify [get].
func (h *InviteVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	verified, err := h.InviteService.Verify(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		writeServiceError(w, r, err, "failed to verify invite")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, opshubsdk.VerifyInviteResponse{
		Email:     verified.Email,
		ExpiresAt: verified.ExpiresAt,
	})
}

type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation Endpoint
//	@Description	Redeem an invite token, creating an ACTIVE user with the default role.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		opshubsdk.AcceptInviteRequest	true	"token, name"
//	@Success		201		{object}	opshubsdk.User					"created user"
//	@Failure		400		{object}	opshubsdk.ErrorResponse			"invalid input, or token used, superseded or expired"
//	@Failure		404		{object}	opshubsdk.ErrorResponse			"unknown token or default role missing"
//	@Failure		409		{object}	opshubsdk.ErrorResponse			"user already exists"
//	@Router			/v1/users/accept-invite [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req opshubsdk.AcceptInviteRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	user, err := h.InviteService.Accept(r.Context(), req.Token, req.Name)
	if err != nil {
		writeServiceError(w, r, err, "failed to accept invite")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(user))
}
