package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kvnochieng52/flight-distance/internal/model"
	"github.com/kvnochieng52/flight-distance/internal/repository"
	"github.com/kvnochieng52/flight-distance/pkg/geo"
	"github.com/kvnochieng52/flight-distance/pkg/mailer"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[uint]*model.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *mockUserRepo) SetActive(_ context.Context, id uint, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsActive = active
	return nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ── Mock TokenRepository ──

type mockTokenRepo struct {
	tokens map[string]*model.PersonalAccessToken
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*model.PersonalAccessToken)}
}

func (m *mockTokenRepo) Create(_ context.Context, token *model.PersonalAccessToken) error {
	token.CreatedAt = time.Now()
	m.tokens[token.ID] = token
	return nil
}

func (m *mockTokenRepo) GetByID(_ context.Context, id string) (*model.PersonalAccessToken, error) {
	if t, ok := m.tokens[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTokenRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := m.tokens[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.tokens, id)
	return nil
}

func (m *mockTokenRepo) DeleteByDevice(_ context.Context, userID uint, deviceName string) error {
	for id, t := range m.tokens {
		if t.UserID == userID && t.DeviceName == deviceName {
			delete(m.tokens, id)
		}
	}
	return nil
}

func (m *mockTokenRepo) DeleteByUser(_ context.Context, userID uint) (int64, error) {
	var n int64
	for id, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}

func (m *mockTokenRepo) Touch(_ context.Context, id string, at time.Time) error {
	if t, ok := m.tokens[id]; ok {
		t.LastUsedAt = &at
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, t := range m.tokens {
		if t.Expired(now) {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}

// ── Mock CoordinateRepository ──

type mockCoordinateRepo struct {
	coords    []model.Coordinate
	allCalls  int
	lastBound geo.Bounds
}

func newMockCoordinateRepo(coords ...model.Coordinate) *mockCoordinateRepo {
	for i := range coords {
		coords[i].ID = uint(i + 1)
	}
	return &mockCoordinateRepo{coords: coords}
}

func (m *mockCoordinateRepo) filter(search string) []model.Coordinate {
	var result []model.Coordinate
	for _, c := range m.coords {
		if !c.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.LocationName), strings.ToLower(search)) {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LocationName < result[j].LocationName })
	return result
}

func (m *mockCoordinateRepo) ListActive(_ context.Context, search string, offset, limit int) ([]model.Coordinate, int64, error) {
	all := m.filter(search)
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Coordinate{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockCoordinateRepo) ListAllActive(_ context.Context, search string) ([]model.Coordinate, error) {
	m.allCalls++
	return m.filter(search), nil
}

func (m *mockCoordinateRepo) GetActiveByID(_ context.Context, id uint) (*model.Coordinate, error) {
	for i := range m.coords {
		if m.coords[i].ID == id && m.coords[i].IsActive {
			return &m.coords[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCoordinateRepo) SearchByName(_ context.Context, name string) ([]model.Coordinate, error) {
	return m.filter(name), nil
}

// WithinBounds returns every active row so the service filter is what is tested.
func (m *mockCoordinateRepo) WithinBounds(_ context.Context, b geo.Bounds) ([]model.Coordinate, error) {
	m.lastBound = b
	return m.filter(""), nil
}

func (m *mockCoordinateRepo) CreateBatch(_ context.Context, coords []model.Coordinate, _ int) error {
	m.coords = append(m.coords, coords...)
	return nil
}

func (m *mockCoordinateRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.coords)), nil
}

// ── Mock PlaneRepository ──

type mockPlaneRepo struct {
	planes    map[uint]*model.Plane
	listCalls int
}

func newMockPlaneRepo() *mockPlaneRepo {
	return &mockPlaneRepo{planes: make(map[uint]*model.Plane)}
}

func (m *mockPlaneRepo) List(_ context.Context) ([]model.Plane, error) {
	m.listCalls++
	result := make([]model.Plane, 0, len(m.planes))
	for _, p := range m.planes {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockPlaneRepo) GetByID(_ context.Context, id uint) (*model.Plane, error) {
	if p, ok := m.planes[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPlaneRepo) Create(_ context.Context, plane *model.Plane) error {
	plane.ID = uint(len(m.planes) + 1)
	m.planes[plane.ID] = plane
	return nil
}

func (m *mockPlaneRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.planes)), nil
}

// ── Mock NewsRepository ──

type mockNewsRepo struct {
	items  map[uint]*model.News
	nextID uint
}

func newMockNewsRepo() *mockNewsRepo {
	return &mockNewsRepo{items: make(map[uint]*model.News), nextID: 1}
}

func (m *mockNewsRepo) sorted() []model.News {
	result := make([]model.News, 0, len(m.items))
	for _, n := range m.items {
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DatePosted.After(result[j].DatePosted) })
	return result
}

func (m *mockNewsRepo) ListLatestActive(_ context.Context, limit int) ([]model.News, error) {
	var result []model.News
	for _, n := range m.sorted() {
		if n.IsActive && len(result) < limit {
			result = append(result, n)
		}
	}
	return result, nil
}

func (m *mockNewsRepo) ListAll(_ context.Context) ([]model.News, error) {
	return m.sorted(), nil
}

func (m *mockNewsRepo) GetByID(_ context.Context, id uint) (*model.News, error) {
	if n, ok := m.items[id]; ok {
		copied := *n
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNewsRepo) Create(_ context.Context, news *model.News) error {
	news.ID = m.nextID
	m.nextID++
	stored := *news
	m.items[news.ID] = &stored
	return nil
}

func (m *mockNewsRepo) Update(_ context.Context, news *model.News) error {
	stored := *news
	m.items[news.ID] = &stored
	return nil
}

func (m *mockNewsRepo) Delete(_ context.Context, id uint) error {
	delete(m.items, id)
	return nil
}

func (m *mockNewsRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

// ── Mock TermsRepository ──

type mockTermsRepo struct {
	terms  map[uint]*model.Terms
	nextID uint
}

func newMockTermsRepo() *mockTermsRepo {
	return &mockTermsRepo{terms: make(map[uint]*model.Terms), nextID: 1}
}

func (m *mockTermsRepo) GetActive(_ context.Context) (*model.Terms, error) {
	for _, t := range m.terms {
		if t.IsActive {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermsRepo) GetByID(_ context.Context, id uint) (*model.Terms, error) {
	if t, ok := m.terms[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTermsRepo) Create(_ context.Context, terms *model.Terms) error {
	terms.ID = m.nextID
	m.nextID++
	terms.UpdatedAt = time.Now()
	m.terms[terms.ID] = terms
	return nil
}

func (m *mockTermsRepo) Update(_ context.Context, terms *model.Terms) error {
	terms.UpdatedAt = time.Now()
	m.terms[terms.ID] = terms
	return nil
}

func (m *mockTermsRepo) ClearActive(_ context.Context) error {
	for _, t := range m.terms {
		t.IsActive = false
	}
	return nil
}

// ── Mock Repository aggregate ──

type mockRepos struct {
	user       *mockUserRepo
	token      *mockTokenRepo
	coordinate *mockCoordinateRepo
	plane      *mockPlaneRepo
	news       *mockNewsRepo
	terms      *mockTermsRepo
}

// newMockRepository returns a Repository without a database; BeginTx yields a
// nil transaction and WithTx returns the same mocks.
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:       newMockUserRepo(),
		token:      newMockTokenRepo(),
		coordinate: newMockCoordinateRepo(),
		plane:      newMockPlaneRepo(),
		news:       newMockNewsRepo(),
		terms:      newMockTermsRepo(),
	}
	return &repository.Repository{
		User:       m.user,
		Token:      m.token,
		Coordinate: m.coordinate,
		Plane:      m.plane,
		News:       m.news,
		Terms:      m.terms,
	}, m
}

// ── Mock storage.Store ──

type mockStore struct {
	files   map[string][]byte
	deleted []string
	seq     int
}

func newMockStore() *mockStore {
	return &mockStore{files: make(map[string][]byte)}
}

func (m *mockStore) Save(_ context.Context, namespace string, file *multipart.FileHeader) (string, error) {
	m.seq++
	path := fmt.Sprintf("%s/%d-%s", namespace, m.seq, file.Filename)
	m.files[path] = []byte(file.Filename)
	return path, nil
}

func (m *mockStore) Delete(_ context.Context, relPath string) error {
	m.deleted = append(m.deleted, relPath)
	delete(m.files, relPath)
	return nil
}

func (m *mockStore) URL(relPath string) string {
	return "http://cdn.test/" + relPath
}

// ── Mock Cache ──

type mockCache struct {
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mockCache) Invalidate(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// ── Mock Notifier ──

type mockNotifier struct {
	sent chan mailer.Registration
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{sent: make(chan mailer.Registration, 4)}
}

func (m *mockNotifier) NotifyRegistration(r mailer.Registration) error {
	m.sent <- r
	return nil
}

// ── helpers ──

// imageUpload builds a multipart file header holding content.
func imageUpload(name string, content []byte) *multipart.FileHeader {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="thumbnail"; filename="%s"`, name))
	h.Set("Content-Type", "application/octet-stream")
	part, _ := w.CreatePart(h)
	part.Write(content)
	w.Close()

	r := multipart.NewReader(&body, w.Boundary())
	form, err := r.ReadForm(1 << 20)
	if err != nil {
		panic(err)
	}
	return form.File["thumbnail"][0]
}

// pngBytes is a 1x1 transparent PNG.
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0a, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
