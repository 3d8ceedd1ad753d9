package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tienda/internal/domain"
	"tienda/internal/services"
)

// Registrar creates accounts through the upstream API (POST /usuarios). The
// endpoint echoes the created user, or an object with an "error" field.
type Registrar struct {
	baseURL string
	http    *http.Client
}

func NewRegistrar(baseURL string) *Registrar {
	return &Registrar{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type registerPayload struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido,omitempty"`
	Email    string `json:"email"`
	Telefono string `json:"telefono,omitempty"`
	Password string `json:"password"`
}

type registerResponse struct {
	IDUsuario int    `json:"id_usuario"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Rol       string `json:"rol"`
	Error     string `json:"error"`
}

func (r *Registrar) Register(ctx context.Context, profile services.RegistrationForm) (domain.User, error) {
	body, err := json.Marshal(registerPayload{
		Nombre:   profile.Name,
		Apellido: profile.LastName,
		Email:    profile.Email,
		Telefono: profile.Phone,
		Password: profile.Password,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/usuarios", bytes.NewReader(body))
	if err != nil {
		return domain.User{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return domain.User{}, &AuthError{Reason: "registration service unreachable"}
	}
	defer resp.Body.Close()

	var decoded registerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.User{}, fmt.Errorf("decode registration response: %w", err)
	}
	if decoded.Error != "" {
		return domain.User{}, &AuthError{Reason: decoded.Error}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.User{}, &AuthError{Reason: fmt.Sprintf("registration failed with status %d", resp.StatusCode)}
	}

	role := decoded.Rol
	if role == "" {
		role = "USER"
	}
	return domain.User{ID: decoded.IDUsuario, Name: decoded.Nombre, Email: decoded.Email, Role: role}, nil
}
