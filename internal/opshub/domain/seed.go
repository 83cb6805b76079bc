package domain

// SeedData describes the rows the seeder upserts on startup.
type SeedData struct {
	Roles      []RoleDefinition
	AdminEmail string
	AdminName  string
}

type RoleDefinition struct {
	Code string
	Name string
	Type RoleType
}

// DefaultSeed returns the system roles every OpsHub deployment needs.
func DefaultSeed(adminEmail string) SeedData {
	return SeedData{
		Roles: []RoleDefinition{
			{Code: AdminRoleCode, Name: "Admin", Type: RoleTypeSystem},
			{Code: DefaultRoleCode, Name: "Viewer", Type: RoleTypeSystem},
		},
		AdminEmail: adminEmail,
		AdminName:  "Admin",
	}
}
