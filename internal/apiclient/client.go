package apiclient

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"estateadmin/internal/domain"
)

// Client talks to the remote listing API. A zero token sends anonymous
// requests; use WithToken for calls made on behalf of a signed-in admin.
type Client struct {
	base    string
	timeout time.Duration
	token   string
	http    *fiber.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http: &fiber.Client{
			UserAgent:   "estateadmin",
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		},
	}
}

// WithToken returns a copy of c that authenticates as the bearer of token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Upload is one file handed to UploadImages.
type Upload struct {
	Name    string
	Content []byte
}

func (c *Client) url(path string, ids ...string) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return c.base + fmt.Sprintf(path, args...)
}

func (c *Client) prepare(a *fiber.Agent) *fiber.Agent {
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	return a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
}

// do issues the request and returns the body of a 2xx answer.
func (c *Client) do(op string, a *fiber.Agent) ([]byte, error) {
	code, body, errs := c.prepare(a).Bytes()
	if len(errs) > 0 {
		return nil, &TransportError{Op: op, Errs: errs}
	}
	if code < 200 || code > 299 {
		var msg struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		_ = json.Unmarshal(body, &msg)
		if msg.Message == "" {
			msg.Message = msg.Error
		}
		return nil, &APIError{Op: op, Status: code, Message: msg.Message}
	}
	return body, nil
}

func (c *Client) Login(email, password string) (string, error) {
	const op = "login"
	body, err := c.do(op, c.http.Post(c.url("/admin/login")).JSON(map[string]string{
		"email":    email,
		"password": password,
	}))
	if err != nil {
		return "", err
	}
	var out struct {
		Token string `json:"token"`
		Data  struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &DecodeError{Op: op, Err: err}
	}
	tok := out.Token
	if tok == "" {
		tok = out.Data.Token
	}
	if tok == "" {
		return "", &DecodeError{Op: op, Err: fmt.Errorf("missing token")}
	}
	return tok, nil
}

// ---------- Properties ----------

func (c *Client) ListProperties() ([]domain.Property, error) {
	const op = "properties.list"
	body, err := c.do(op, c.http.Get(c.url("/post/viewallpost")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Property](op, body)
}

func (c *Client) GetProperty(id string) (domain.Property, error) {
	const op = "properties.get"
	body, err := c.do(op, c.http.Get(c.url("/post/%s", id)))
	if err != nil {
		return domain.Property{}, err
	}
	return decodeOne[domain.Property](op, body)
}

func (c *Client) CreateProperty(adminID string, in domain.PropertyInput) (domain.Property, error) {
	const op = "properties.create"
	body, err := c.do(op, c.http.Post(c.url("/post/create/%s", adminID)).JSON(in))
	if err != nil {
		return domain.Property{}, err
	}
	return decodeOptional[domain.Property](op, body)
}

func (c *Client) UpdateProperty(id string, in domain.PropertyInput) (domain.Property, error) {
	const op = "properties.update"
	body, err := c.do(op, c.http.Put(c.url("/post/updatepost/%s", id)).JSON(in))
	if err != nil {
		return domain.Property{}, err
	}
	return decodeOptional[domain.Property](op, body)
}

func (c *Client) DeleteProperty(id string) error {
	_, err := c.do("properties.delete", c.http.Delete(c.url("/post/delete/%s", id)))
	return err
}

// ---------- Images ----------

func (c *Client) UploadImages(files []Upload) ([]string, error) {
	const op = "images.upload"
	a := c.http.Post(c.url("/file/uploads"))
	for _, f := range files {
		a.FileData(&fiber.FormFile{Fieldname: "images", Name: f.Name, Content: f.Content})
	}
	body, err := c.do(op, a.MultipartForm(nil))
	if err != nil {
		return nil, err
	}
	var out struct {
		ImagePaths []string `json:"imagePaths"`
		ImageURLs  []string `json:"imageUrls"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	paths := out.ImagePaths
	if len(paths) == 0 {
		paths = out.ImageURLs
	}
	if len(paths) != len(files) {
		return nil, &DecodeError{Op: op, Err: fmt.Errorf("uploaded %d files, got %d urls", len(files), len(paths))}
	}
	return paths, nil
}

func (c *Client) DeleteImages(urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	_, err := c.do("images.delete", c.http.Post(c.url("/post/delete-images")).JSON(map[string][]string{"images": urls}))
	return err
}

// ---------- Taxonomy ----------

func (c *Client) ListCategories() ([]domain.Category, error) {
	const op = "categories.list"
	body, err := c.do(op, c.http.Get(c.url("/admin/getcategory")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Category](op, body)
}

func (c *Client) CreateCategory(adminID, name, description string) error {
	_, err := c.do("categories.create", c.http.Post(c.url("/admin/addcategory/%s", adminID)).JSON(map[string]string{
		"name":        strings.ToLower(name),
		"description": description,
	}))
	return err
}

func (c *Client) ListDistricts() ([]domain.District, error) {
	const op = "districts.list"
	body, err := c.do(op, c.http.Get(c.url("/admin/getdistrict")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.District](op, body)
}

func (c *Client) CreateDistrict(adminID, name string) error {
	_, err := c.do("districts.create", c.http.Post(c.url("/admin/addistrict/%s", adminID)).JSON(map[string]string{
		"name": strings.ToLower(name),
	}))
	return err
}

// ---------- Users & stats ----------

func (c *Client) ListUsers() ([]domain.User, error) {
	const op = "users.list"
	body, err := c.do(op, c.http.Get(c.url("/user/get_all_users")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.User](op, body)
}

func (c *Client) PropertiesPerCategory() ([]domain.TaxonomyCount, error) {
	const op = "stats.category"
	body, err := c.do(op, c.http.Get(c.url("/admin/propety_in_category")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TaxonomyCount](op, body)
}

func (c *Client) PropertiesPerDistrict() ([]domain.TaxonomyCount, error) {
	const op = "stats.district"
	body, err := c.do(op, c.http.Get(c.url("/admin/propety_in_district")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TaxonomyCount](op, body)
}

func (c *Client) PropertyStats() ([]domain.PropertyStat, error) {
	const op = "stats.count"
	body, err := c.do(op, c.http.Get(c.url("/admin/propety_count")))
	if err != nil {
		return nil, err
	}
	return decodeList[domain.PropertyStat](op, body)
}

// ---------- Commissions ----------

// CommissionByProperty returns nil when the property has no commission.
func (c *Client) CommissionByProperty(propertyID string) (*domain.Commission, error) {
	const op = "commissions.get"
	body, err := c.do(op, c.http.Get(c.url("/commission/post/%s", propertyID)))
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == fiber.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	raw, err := envelopeData(op, body)
	if err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	cm, err := decodeValue[domain.Commission](op, raw)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) CreateCommission(in domain.CommissionInput) (domain.Commission, error) {
	const op = "commissions.create"
	body, err := c.do(op, c.http.Post(c.url("/commission/")).JSON(in))
	if err != nil {
		return domain.Commission{}, err
	}
	return decodeOptional[domain.Commission](op, body)
}

func (c *Client) UpdateCommission(id string, in domain.CommissionInput) (domain.Commission, error) {
	const op = "commissions.update"
	body, err := c.do(op, c.http.Put(c.url("/commission/%s", id)).JSON(in))
	if err != nil {
		return domain.Commission{}, err
	}
	return decodeOptional[domain.Commission](op, body)
}

func (c *Client) DeleteCommission(id string) error {
	_, err := c.do("commissions.delete", c.http.Delete(c.url("/commission/%s", id)))
	return err
}

func isNull(raw []byte) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
