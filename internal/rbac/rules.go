package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"author": {
		"session:create",
		"session:view-own",
		"session:edit",
		"session:save",
		"items:import",
		"items:export",
		"assets:write",
		"user:change_password",
	},
	"reviewer": {
		"session:view-all",
		"items:export",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
