/*
Package opshubsdk provides a client for the OpsHub user administration API.

# Invite Lifecycle

An administrator issues an invite for an email address. The response carries
an accept URL whose "token" query parameter is the only copy of the raw token:

	client := opshubsdk.NewClient("http://localhost:8080").As(adminID)

	invite, err := client.IssueInvite(ctx, "new.hire@example.com")

The invitee's browser then verifies and redeems the token:

	info, err := client.VerifyInvite(ctx, token)
	user, err := client.AcceptInvite(ctx, opshubsdk.AcceptInviteRequest{
		Token: token,
		Name:  "New Hire",
	})

A token can be redeemed once. Verification and redemption fail with
not_found for unknown tokens and invalid_state once the token has been used,
superseded or has expired.

# Actor Attribution

Set ActorID (or use As) to have audit entries attribute mutations to a user.
The header is informational; the service does not authenticate it.

# Error Handling

Non-2xx responses are returned as *APIError carrying the status code, the
error kind and its description:

	_, err := client.AcceptInvite(ctx, req)
	if opshubsdk.IsCode(err, opshubsdk.ErrorCodeInvalidState) {
		// token already used, superseded or expired
	}
*/
package opshubsdk
