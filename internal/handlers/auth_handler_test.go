package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/onlyfilms/backend/internal/auth"
	"github.com/onlyfilms/backend/internal/models"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) UpdatePassword(id uint, hashed string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Password = hashed
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) DeleteUser(id uint) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeProfileRepo struct {
	profiles map[uint]*models.Profile
	nextID   uint
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uint]*models.Profile{}, nextID: 1}
}

func (r *fakeProfileRepo) CreateProfile(profile *models.Profile) error {
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) GetProfileByID(id uint) (*models.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) GetProfileByUserID(userID uint) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) GetProfileByDisplayName(name string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if strings.EqualFold(p.DisplayName, name) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProfileRepo) UpdateProfile(profile *models.Profile) error { return nil }

func (r *fakeProfileRepo) DeleteProfileByUserID(userID uint) error {
	for id, p := range r.profiles {
		if p.UserID == userID {
			delete(r.profiles, id)
		}
	}
	return nil
}

func (r *fakeProfileRepo) SearchProfiles(query string, limit int) ([]models.Profile, error) {
	return nil, nil
}

func (r *fakeProfileRepo) SummariesByIDs(ids []uint) (map[uint]models.ProfileSummary, error) {
	out := map[uint]models.ProfileSummary{}
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out[id] = p.Summary()
		}
	}
	return out, nil
}

type authEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    models.AuthResponse `json:"data"`
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRegisterCreatesAccountAndProfile(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	authority := auth.NewAuthority("test-secret")
	h := NewAuthHandler(users, profiles, authority)

	rec := postJSON(t, h.Register, "/api/auth/register",
		`{"email":"ana@example.com","password":"hunter22"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var env authEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if env.Data.Token == "" {
		t.Error("expected a token in the response")
	}
	if env.Data.DisplayName != "ana" {
		t.Errorf("display name = %q, want default from email local part", env.Data.DisplayName)
	}

	claims, authErr := authority.Validate(env.Data.Token)
	if authErr != nil {
		t.Fatalf("issued token does not validate: %v", authErr)
	}
	if claims.ProfileID != env.Data.ProfileID {
		t.Errorf("token profile id = %d, want %d", claims.ProfileID, env.Data.ProfileID)
	}

	if _, err := profiles.GetProfileByUserID(env.Data.UserID); err != nil {
		t.Errorf("profile was not created for the new user: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()
	h := NewAuthHandler(users, profiles, auth.NewAuthority("test-secret"))

	body := `{"email":"ana@example.com","password":"hunter22"}`
	if rec := postJSON(t, h.Register, "/api/auth/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d", rec.Code)
	}
	if rec := postJSON(t, h.Register, "/api/auth/register", body); rec.Code != http.StatusBadRequest {
		t.Errorf("second register: status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := NewAuthHandler(newFakeUserRepo(), newFakeProfileRepo(), auth.NewAuthority("test-secret"))

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"hunter22"}`},
		{"bad email", `{"email":"not-an-email","password":"hunter22"}`},
		{"short password", `{"email":"ana@example.com","password":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := postJSON(t, h.Register, "/api/auth/register", tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if err := users.CreateUser(&models.User{Email: "ana@example.com", Password: string(hashed)}); err != nil {
		t.Fatal(err)
	}
	if err := profiles.CreateProfile(&models.Profile{UserID: 1, DisplayName: "Ana"}); err != nil {
		t.Fatal(err)
	}

	h := NewAuthHandler(users, profiles, auth.NewAuthority("test-secret"))

	rec := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"ana@example.com","password":"hunter22"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body)
	}
	var env authEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if env.Data.Token == "" {
		t.Error("expected a token in the response")
	}
	if env.Data.DisplayName != "Ana" {
		t.Errorf("display name = %q, want Ana", env.Data.DisplayName)
	}
}

// Wrong password and unknown email must be indistinguishable to the caller.
func TestLoginFailuresLookAlike(t *testing.T) {
	users := newFakeUserRepo()
	profiles := newFakeProfileRepo()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	users.CreateUser(&models.User{Email: "ana@example.com", Password: string(hashed)})
	profiles.CreateProfile(&models.Profile{UserID: 1, DisplayName: "Ana"})

	h := NewAuthHandler(users, profiles, auth.NewAuthority("test-secret"))

	wrongPass := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"ana@example.com","password":"nope-nope"}`)
	unknownEmail := postJSON(t, h.Login, "/api/auth/login",
		`{"email":"ghost@example.com","password":"whatever"}`)

	if wrongPass.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d / %d, want both %d", wrongPass.Code, unknownEmail.Code, http.StatusUnauthorized)
	}

	var a, b struct {
		Message string `json:"message"`
	}
	json.Unmarshal(wrongPass.Body.Bytes(), &a)
	json.Unmarshal(unknownEmail.Body.Bytes(), &b)
	if a.Message != b.Message {
		t.Errorf("failure messages differ: %q vs %q", a.Message, b.Message)
	}
}
