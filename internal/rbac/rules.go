package rbac

// Default policy. "paper:*" style entries match by prefix.
var RolePermissions = map[string][]string{
	"student": {
		"subject:view",
		"paper:view",
	},
	"teacher": {
		"subject:*",
		"paper:*",
	},
	"admin": {
		"*", // everything
	},
}
