package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/domain"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
	"github.com/jhoicas/tradeportal-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := []*entity.User{}
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

var testJWT = JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "tradeportal"}

func registerUser(t *testing.T, uc *AuthUseCase, email, password, role string) *dto.UserResponse {
	t.Helper()
	u, err := uc.Register(dto.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Usuario de Prueba",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func TestRegisterYLogin(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWT)

	created := registerUser(t, uc, "ana@example.com", "s3cr3ta", "admin")
	assert.Equal(t, "admin", created.Role)
	assert.Equal(t, "active", created.Status)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "s3cr3ta"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// El token lleva id y rol.
	userID, role, err := jwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "admin", role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWT)
	registerUser(t, uc, "ana@example.com", "s3cr3ta", "staff")

	_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testJWT)
	created := registerUser(t, uc, "ana@example.com", "s3cr3ta", "staff")

	repo.users[created.ID].Status = "inactive"
	_, err := uc.Login(dto.LoginRequest{Email: "ana@example.com", Password: "s3cr3ta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWT)
	registerUser(t, uc, "ana@example.com", "s3cr3ta", "staff")

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolPorDefectoStaff(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWT)

	u, err := uc.Register(dto.RegisterRequest{Email: "nuevo@example.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "staff", u.Role)

	_, err = uc.Register(dto.RegisterRequest{Email: "otro@example.com", Password: "x", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProfile_PatchParcial(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWT)
	created := registerUser(t, uc, "ana@example.com", "s3cr3ta", "staff")

	dept := "Logística"
	updated, err := uc.UpdateProfile(created.ID, dto.UpdateProfileRequest{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Logística", updated.Department)
	assert.Equal(t, created.FullName, updated.FullName)
	assert.Equal(t, "staff", updated.Role)
}

func TestDeleteUser_NoASiMismo(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testJWT)
	admin := registerUser(t, uc, "admin@example.com", "s3cr3ta", "admin")
	staff := registerUser(t, uc, "staff@example.com", "s3cr3ta", "staff")

	err := uc.DeleteUser(admin.ID, admin.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, uc.DeleteUser(admin.ID, staff.ID))
}
