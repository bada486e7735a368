package model

// SessionContext identifies the authenticated user for every gateway
// and backend call. The credential is an opaque bearer token issued by
// the auth collaborator; the orchestrator never inspects it.
type SessionContext struct {
	UserID     string
	Credential string
}
