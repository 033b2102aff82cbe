package handlers

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/user"
)

func RegisterUserHandler(users user.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerUserRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		created, err := users.CreateUser(r.Context(), req.Username, user.Role(req.Role))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func ListUsersHandler(users user.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.ListUsers(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func ChangeRoleHandler(users user.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeRoleRequest
		if err := decodeAndValidate(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		updated, err := users.UpdateRole(r.Context(), req.Username, user.Role(req.Role))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}
