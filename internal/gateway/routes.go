package gateway

import (
	"github.com/kingrain94/user-management-api/internal/service"
)

// RegisterUserManagement registers the user management operations
func RegisterUserManagement(a *Adapter, users *service.UserService) {
	a.Handle(KindQuery, "getUsers", Bind(users.GetUsers))
	a.Handle(KindQuery, "getUser", Bind(users.GetUser))
	a.Handle(KindQuery, "getUserCount", Bind(users.GetUserCount))
	a.Handle(KindQuery, "getRoles", Bind(users.GetRoles))
	a.Handle(KindQuery, "getUserRoleMapping", Bind(users.GetUserRoleMapping))

	a.Handle(KindMutation, "createUser", Bind(users.CreateUser))
	a.Handle(KindMutation, "updateUserGeneralInfo", Bind(users.UpdateUserGeneralInfo))
	a.Handle(KindMutation, "updateUserState", Bind(users.UpdateUserState))
	a.Handle(KindMutation, "createUserAuth", Bind(users.CreateUserAuth))
	a.Handle(KindMutation, "removeUserAuth", Bind(users.RemoveUserAuth))
	a.Handle(KindMutation, "resetUserPassword", Bind(users.ResetUserPassword))
	a.Handle(KindMutation, "addRolesToTheUser", Bind(users.AddRolesToTheUser))
	a.Handle(KindMutation, "removeRolesFromUser", Bind(users.RemoveRolesFromUser))
	a.Handle(KindMutation, "exportUserHistory", Bind(users.ExportUserHistory))
}

// RegisterSales registers the sales gateway operations
func RegisterSales(a *Adapter, tokens *service.TokenService) {
	a.HandlePublic(KindQuery, "getToken", Bind(tokens.GetToken))
}
