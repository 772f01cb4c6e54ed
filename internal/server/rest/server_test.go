package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phonomarket/phono/internal/logging"
	"github.com/phonomarket/phono/internal/netx"
	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/server/models"
	"github.com/phonomarket/phono/internal/server/repositories/products"
	"github.com/phonomarket/phono/internal/server/services"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// Fakes carry function fields so each test wires only what it needs. The
// fake auth accepts the literal token "valid-token" as user 7.

const testToken = "valid-token"
const testUserID = int64(7)

type fakeAuth struct {
	registerFn func(ctx context.Context, phone, password, name, surname string) (*services.RegistrationChallenge, error)
	verifyFn   func(ctx context.Context, uuid, code string) (*services.TokenPair, error)
	loginFn    func(ctx context.Context, phone, password string) (*services.TokenPair, error)
	refreshFn  func(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

func (f *fakeAuth) Register(ctx context.Context, phone, password, name, surname string) (*services.RegistrationChallenge, error) {
	return f.registerFn(ctx, phone, password, name, surname)
}

func (f *fakeAuth) VerifyOTP(ctx context.Context, uuid, code string) (*services.TokenPair, error) {
	return f.verifyFn(ctx, uuid, code)
}

func (f *fakeAuth) Login(ctx context.Context, phone, password string) (*services.TokenPair, error) {
	return f.loginFn(ctx, phone, password)
}

func (f *fakeAuth) Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuth) UserIDFromToken(token string) (int64, error) {
	if token == testToken {
		return testUserID, nil
	}
	return 0, common.ErrInvalidToken
}

type fakeProducts struct {
	getFn    func(ctx context.Context, id int64) (*services.ProductDetails, error)
	latestFn func(ctx context.Context, limit int) ([]services.ProductDetails, error)
	searchFn func(ctx context.Context, f products.SearchFilter) ([]services.ProductDetails, error)
	createFn func(ctx context.Context, p *models.Product) (*services.ProductDetails, error)
}

func (f *fakeProducts) Get(ctx context.Context, id int64) (*services.ProductDetails, error) {
	return f.getFn(ctx, id)
}

func (f *fakeProducts) Latest(ctx context.Context, limit int) ([]services.ProductDetails, error) {
	return f.latestFn(ctx, limit)
}

func (f *fakeProducts) ByBrand(context.Context, int64) ([]services.ProductDetails, error) {
	return nil, nil
}

func (f *fakeProducts) ByModel(context.Context, int64) ([]services.ProductDetails, error) {
	return nil, nil
}

func (f *fakeProducts) Search(ctx context.Context, filter products.SearchFilter) ([]services.ProductDetails, error) {
	return f.searchFn(ctx, filter)
}

func (f *fakeProducts) Create(ctx context.Context, p *models.Product) (*services.ProductDetails, error) {
	return f.createFn(ctx, p)
}

func (f *fakeProducts) Update(context.Context, *models.Product) (*services.ProductDetails, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeProducts) Archive(context.Context, int64, int64, bool) error { return nil }
func (f *fakeProducts) Unarchive(context.Context, int64, int64) error     { return nil }
func (f *fakeProducts) Upgrade(context.Context, int64, int64) error       { return nil }

func (f *fakeProducts) Home(context.Context) (*services.HomeData, error) {
	return &services.HomeData{}, nil
}

type fakeFavourites struct {
	addFn func(ctx context.Context, userID, productID int64) error
}

func (f *fakeFavourites) List(context.Context, int64) ([]services.ProductDetails, error) {
	return nil, nil
}

func (f *fakeFavourites) Add(ctx context.Context, userID, productID int64) error {
	return f.addFn(ctx, userID, productID)
}

func (f *fakeFavourites) Remove(context.Context, int64, int64) error { return nil }

type fakeProfile struct {
	meFn func(ctx context.Context, userID int64) (*services.ProfileData, error)
}

func (f *fakeProfile) Me(ctx context.Context, userID int64) (*services.ProfileData, error) {
	return f.meFn(ctx, userID)
}

func (f *fakeProfile) Update(context.Context, int64, *string, *string, *string, *string) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeProfile) ChangeLanguage(context.Context, int64, string) error { return nil }
func (f *fakeProfile) DeleteAccount(context.Context, int64) error          { return nil }

func (f *fakeProfile) AddPhone(context.Context, int64, string) (*models.Phone, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeProfile) DeletePhone(context.Context, int64, int64) error { return nil }

func (f *fakeProfile) AddEmail(context.Context, int64, string) (*models.Email, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeProfile) EditEmail(context.Context, int64, int64, string) (*models.Email, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeProfile) DeleteEmail(context.Context, int64, int64) error { return nil }

func (f *fakeProfile) AddAddress(context.Context, *models.Address) (*models.Address, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeProfile) DeleteAddress(context.Context, int64, int64) error { return nil }

type fakeComments struct{}

func (fakeComments) ByProduct(context.Context, int64) ([]models.CommentWithAuthor, error) {
	return nil, nil
}

func (fakeComments) Add(context.Context, int64, int64, string) (*models.CommentWithAuthor, error) {
	return nil, common.ErrorNotFound
}

func (fakeComments) Update(context.Context, int64, int64, string) (*models.CommentWithAuthor, error) {
	return nil, common.ErrorNotFound
}

func (fakeComments) Delete(context.Context, int64, int64) error { return nil }

type fakeImages struct {
	uploadFn func(ctx context.Context, userID, productID int64, isMain bool, fileName string, data []byte) (*models.ProductImage, error)
}

func (f *fakeImages) Upload(ctx context.Context, userID, productID int64, isMain bool, fileName string, data []byte) (*models.ProductImage, error) {
	return f.uploadFn(ctx, userID, productID, isMain, fileName, data)
}

func (f *fakeImages) Delete(context.Context, int64, int64) error  { return nil }
func (f *fakeImages) SetMain(context.Context, int64, int64) error { return nil }

type testDeps struct {
	auth       *fakeAuth
	profile    *fakeProfile
	products   *fakeProducts
	favourites *fakeFavourites
	images     *fakeImages
}

func newTestServer() (*httptest.Server, *testDeps) {
	deps := &testDeps{
		auth:       &fakeAuth{},
		profile:    &fakeProfile{},
		products:   &fakeProducts{},
		favourites: &fakeFavourites{},
		images:     &fakeImages{},
	}
	s := NewServer(nopLogger{}, deps.auth, deps.profile, deps.products,
		deps.favourites, fakeComments{}, deps.images)
	return httptest.NewServer(s.Routes()), deps
}

func doRequest(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var rdr *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRegisterAndVerify(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	expire := time.Now().Add(3 * time.Minute).Truncate(time.Second)
	deps.auth.registerFn = func(_ context.Context, phone, password, name, surname string) (*services.RegistrationChallenge, error) {
		assert.Equal(t, "901234567", phone)
		assert.Equal(t, "secret", password)
		return &services.RegistrationChallenge{UUID: "ch-1", Phone: phone, Expire: expire}, nil
	}
	deps.auth.verifyFn = func(_ context.Context, uuid, code string) (*services.TokenPair, error) {
		assert.Equal(t, "ch-1", uuid)
		assert.Equal(t, "1234", code)
		return &services.TokenPair{AccessToken: "token-xyz", RefreshToken: "refresh-abc"}, nil
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{
		"phone": "901234567", "password": "secret", "name": "Olim", "surname": "Karimov",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var reg registerResponse
	decodeInto(t, resp, &reg)
	require.Equal(t, "ch-1", reg.UUID)
	require.Equal(t, "901234567", reg.Phone)
	require.Equal(t, expire.Format(time.RFC3339), reg.Expire)

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/verify-otp", "", map[string]string{
		"uuid": "ch-1", "otp": "1234",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok tokenResponse
	decodeInto(t, resp, &tok)
	require.Equal(t, "token-xyz", tok.AccessToken)
	require.Equal(t, "refresh-abc", tok.RefreshToken)
}

func TestRegisterMissingFields(t *testing.T) {
	srv, _ := newTestServer()
	defer srv.Close()

	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/register", "", map[string]string{"phone": "901234567"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginWrongCredentials(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.auth.loginFn = func(context.Context, string, string) (*services.TokenPair, error) {
		return nil, common.ErrorWrongLogin
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/login", "", map[string]string{
		"phone": "901234567", "password": "nope",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var em errorMessage
	decodeInto(t, resp, &em)
	require.Equal(t, common.ErrorWrongLogin.Error(), em.Message)
}

func TestRefreshTokenRotation(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.auth.refreshFn = func(_ context.Context, refreshToken string) (*services.TokenPair, error) {
		if refreshToken != "refresh-abc" {
			return nil, common.ErrInvalidToken
		}
		return &services.TokenPair{AccessToken: "token-2", RefreshToken: "refresh-2"}, nil
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/auth/refresh-token", "", map[string]string{
		"refreshToken": "refresh-abc",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok tokenResponse
	decodeInto(t, resp, &tok)
	require.Equal(t, "token-2", tok.AccessToken)
	require.Equal(t, "refresh-2", tok.RefreshToken)

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/refresh-token", "", map[string]string{
		"refreshToken": "stale",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodPost, srv.URL+"/auth/refresh-token", "", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.profile.meFn = func(_ context.Context, uid int64) (*services.ProfileData, error) {
		require.Equal(t, testUserID, uid)
		return &services.ProfileData{User: models.User{ID: uid, Phone: "901234567", IsActive: true}}, nil
	}

	resp := doRequest(t, http.MethodGet, srv.URL+"/user/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, srv.URL+"/user/me", "bogus", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, srv.URL+"/user/me", testToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile userProfile
	decodeInto(t, resp, &profile)
	require.Equal(t, testUserID, profile.ID)
	require.Equal(t, "901234567", profile.Phone)
	// aggregate lists serialize as [] rather than null
	require.NotNil(t, profile.Products)
}

func TestProductNotFound(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.products.getFn = func(context.Context, int64) (*services.ProductDetails, error) {
		return nil, common.ErrorNotFound
	}

	resp := doRequest(t, http.MethodGet, srv.URL+"/product/42", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, http.MethodGet, srv.URL+"/product/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSearchPassesFilter(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	var got products.SearchFilter
	deps.products.searchFn = func(_ context.Context, f products.SearchFilter) ([]services.ProductDetails, error) {
		got = f
		return nil, nil
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/product/search", "", map[string]any{
		"search": "iphone", "brand_id": 1, "price_to": 700, "top": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []product
	decodeInto(t, resp, &list)
	require.NotNil(t, list)
	require.Empty(t, list)

	require.Equal(t, "iphone", got.Search)
	require.EqualValues(t, 1, got.BrandID)
	require.EqualValues(t, 700, got.PriceTo)
	require.True(t, got.Top)
}

func TestAddFavouriteDuplicate(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.favourites.addFn = func(_ context.Context, uid, productID int64) error {
		require.Equal(t, testUserID, uid)
		require.EqualValues(t, 5, productID)
		return common.ErrAlreadyInFavourites
	}

	resp := doRequest(t, http.MethodPost, srv.URL+"/favourite-item", testToken, map[string]int64{"product_id": 5})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var em errorMessage
	decodeInto(t, resp, &em)
	// clients match this message verbatim to treat the duplicate as success
	require.Equal(t, "already in favourites", em.Message)
}

func TestUploadImageMultipart(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.images.uploadFn = func(_ context.Context, uid, productID int64, isMain bool, fileName string, data []byte) (*models.ProductImage, error) {
		require.Equal(t, testUserID, uid)
		require.EqualValues(t, 9, productID)
		require.True(t, isMain)
		require.Equal(t, "front.jpg", fileName)
		require.Equal(t, []byte("jpeg-bytes"), data)
		return &models.ProductImage{ID: 1, ProductID: productID, URL: "http://img/front.jpg", IsMain: true}, nil
	}

	body, contentType, err := netx.MultipartBody(map[string]string{
		"product_id": "9", "is_main": "true",
	}, "images", "front.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/product-image", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(common.AuthHeaderName, common.BearerPrefix+testToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var img productImage
	decodeInto(t, resp, &img)
	require.EqualValues(t, 1, img.ID)
	require.True(t, img.IsMain)
}

func TestInternalErrorsDoNotLeak(t *testing.T) {
	srv, deps := newTestServer()
	defer srv.Close()

	deps.products.latestFn = func(context.Context, int) ([]services.ProductDetails, error) {
		return nil, context.DeadlineExceeded
	}

	resp := doRequest(t, http.MethodGet, srv.URL+"/product", "", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var em errorMessage
	decodeInto(t, resp, &em)
	require.Equal(t, "internal server error", em.Message)
	require.False(t, strings.Contains(em.Message, "deadline"))
}
