package domain

type CtxKey string

const (
	KeyPrincipalID CtxKey = "PrincipalID"
	KeyUserEmail   CtxKey = "Email"
	KeyUserRole    CtxKey = "Role"
)

// Roles resolved by the identity provider.
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)
