package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/netx"
	"github.com/phonomarket/phono/internal/phonex"
)

// HTTPClient is the Client implementation over net/http.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
	tokens  TokenSource
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API at baseURL. The token source is
// consulted before every request; requests time out after timeout.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// errorMessage is the body shape of non-2xx responses.
type errorMessage struct {
	Message string `json:"message"`
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses become *ServerError; transport failures wrap
// common.ErrorNetwork.
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var em errorMessage
		_ = json.NewDecoder(resp.Body).Decode(&em)
		return newServerError(resp.StatusCode, em.Message)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *HTTPClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshToken exchanges a refresh token for a fresh pair. The server rotates
// the refresh token on every call, so the caller must persist the new one.
func (c *HTTPClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var out TokenResponse
	req := RefreshTokenRequest{RefreshToken: refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh-token", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *HTTPClient) Me(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/user/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*UserProfile, error) {
	var out UserProfile
	if err := c.doJSON(ctx, http.MethodPatch, "/user/profile", upd, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangeLanguage(ctx context.Context, lang string) error {
	in := map[string]string{"language": lang}
	return c.doJSON(ctx, http.MethodPatch, "/user/language", in, nil)
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/user/account", nil, nil)
}

// AddPhone sends the number with the "+998" prefix stripped and embedded
// spaces removed, per the API's local-number convention.
func (c *HTTPClient) AddPhone(ctx context.Context, phone string) (*Phone, error) {
	in := map[string]string{"phone": phonex.Normalize(phone)}
	var out Phone
	if err := c.doJSON(ctx, http.MethodPost, "/phone", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePhone(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/phone/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) AddEmail(ctx context.Context, email string) (*Email, error) {
	in := map[string]string{"email": email}
	var out Email
	if err := c.doJSON(ctx, http.MethodPost, "/email", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) EditEmail(ctx context.Context, id int64, email string) (*Email, error) {
	in := map[string]string{"email": email}
	var out Email
	if err := c.doJSON(ctx, http.MethodPatch, "/email/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteEmail(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/email/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) AddAddress(ctx context.Context, req AddressRequest) (*Address, error) {
	var out Address
	if err := c.doJSON(ctx, http.MethodPost, "/address", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteAddress(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/address/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) Products(ctx context.Context, limit int) ([]Product, error) {
	path := "/product"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Product(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodGet, "/product/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ProductsByBrand(ctx context.Context, brandID int64) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/product/brand/"+strconv.FormatInt(brandID, 10), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ProductsByModel(ctx context.Context, modelID int64) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/product/model/"+strconv.FormatInt(modelID, 10), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodPost, "/product", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodPatch, "/product/"+strconv.FormatInt(id, 10), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ArchiveProduct(ctx context.Context, id int64, isSold bool) error {
	in := map[string]bool{"is_sold": isSold}
	return c.doJSON(ctx, http.MethodPatch, "/product/archive/"+strconv.FormatInt(id, 10), in, nil)
}

func (c *HTTPClient) UnarchiveProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPatch, "/product/unarchive/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) UpgradeProduct(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPatch, "/product/upgrade/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) Search(ctx context.Context, req SearchRequest) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodPost, "/product/search", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Favourites(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/favourite-item", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFavourite treats the server's duplicate-add error as success: the
// endpoint is not idempotent and reports "already in favourites" when the
// bookmark exists, which is the state the caller wanted anyway.
func (c *HTTPClient) AddFavourite(ctx context.Context, productID int64) error {
	in := map[string]int64{"product_id": productID}
	err := c.doJSON(ctx, http.MethodPost, "/favourite-item", in, nil)
	if err != nil {
		var se *ServerError
		if errors.As(err, &se) && se.Message == common.ErrAlreadyInFavourites.Error() {
			return nil
		}
	}
	return err
}

func (c *HTTPClient) RemoveFavourite(ctx context.Context, productID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/favourite-item/user/product/"+strconv.FormatInt(productID, 10), nil, nil)
}

func (c *HTTPClient) CommentsByProduct(ctx context.Context, productID int64) ([]Comment, error) {
	var out []Comment
	if err := c.doJSON(ctx, http.MethodGet, "/comment/product/"+strconv.FormatInt(productID, 10), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AddComment(ctx context.Context, productID int64, text string) (*Comment, error) {
	in := map[string]any{"product_id": productID, "text": text}
	var out Comment
	if err := c.doJSON(ctx, http.MethodPost, "/comment", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateComment(ctx context.Context, id int64, text string) (*Comment, error) {
	in := map[string]string{"text": text}
	var out Comment
	if err := c.doJSON(ctx, http.MethodPatch, "/comment/"+strconv.FormatInt(id, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteComment(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/comment/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) UploadProductImage(ctx context.Context, productID int64, isMain bool, fileName string, data []byte) (*ProductImage, error) {
	fields := map[string]string{
		"product_id": strconv.FormatInt(productID, 10),
		"is_main":    strconv.FormatBool(isMain),
	}
	body, contentType, err := netx.MultipartBody(fields, "images", fileName, data)
	if err != nil {
		return nil, err
	}
	var out ProductImage
	if err := c.do(ctx, http.MethodPost, "/product-image", body, contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProductImage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/product-image/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *HTTPClient) SetMainProductImage(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodPatch, "/product-image/"+strconv.FormatInt(id, 10)+"/set-main", nil, nil)
}

func (c *HTTPClient) Home(ctx context.Context) (*HomepageData, error) {
	var out HomepageData
	if err := c.doJSON(ctx, http.MethodGet, "/web", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
