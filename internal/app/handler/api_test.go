package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/config"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/ds"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/dto"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/middleware"
	"github.com/Omri-Jukin/Portfolio-sub000/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminKey = "test-admin-key"

// newTestServer поднимает API на in-memory SQLite без Redis и MinIO
func newTestServer(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()
	return newTestServerWithImages(t, nil)
}

// newTestServerWithImages дополнительно подключает хранилище изображений
func newTestServerWithImages(t *testing.T, images ImageStorage) (*gin.Engine, *repository.Repository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&ds.ProjectType{},
		&ds.BaseRate{},
		&ds.Feature{},
		&ds.MultiplierGroup{},
		&ds.MultiplierValue{},
		&ds.MetaSetting{},
		&ds.CalculatorSetting{},
		&ds.PricingDiscount{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := repository.NewWithDB(db)
	cfg := &config.Config{
		AdminKey: testAdminKey,
		JWT: config.JWTConfig{
			Token:         "test",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
		QuoteTTL: time.Hour,
	}

	apiHandler := NewAPIHandler(repo, nil, images, cfg)
	router := gin.New()
	apiHandler.RegisterAPIRoutes(router, middleware.NewAdminMiddleware(cfg))

	return router, repo
}

// fakeImageStorage подменяет MinIO в тестах обработчиков
type fakeImageStorage struct {
	objects map[string][]byte
	deleted []string
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{objects: map[string][]byte{}}
}

func (f *fakeImageStorage) UploadImage(fileData []byte, originalFilename string) (string, error) {
	name := "img_" + originalFilename
	f.objects[name] = fileData
	return name, nil
}

func (f *fakeImageStorage) DeleteImage(filename string) error {
	delete(f.objects, filename)
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeImageStorage) GetImageURL(filename string) (string, error) {
	return "http://images.local/" + filename + "?signature=test", nil
}

func (f *fakeImageStorage) ImageExists(filename string) (bool, error) {
	_, ok := f.objects[filename]
	return ok, nil
}

func doRequest(router *gin.Engine, method, path string, body interface{}, adminKey string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedDB(t *testing.T, repo *repository.Repository, values ...interface{}) {
	t.Helper()
	ctx := context.Background()
	for _, v := range values {
		var err error
		switch value := v.(type) {
		case *ds.ProjectType:
			err = repo.CreateProjectType(ctx, value)
		case *ds.Feature:
			err = repo.CreateFeature(ctx, value)
		case *ds.MultiplierGroup:
			err = repo.CreateMultiplierGroup(ctx, value)
		case *ds.MultiplierValue:
			err = repo.CreateMultiplierValue(ctx, value)
		case *ds.BaseRate:
			err = repo.CreateBaseRate(ctx, value)
		case *ds.MetaSetting:
			err = repo.UpsertMetaSetting(ctx, value)
		case *ds.PricingDiscount:
			err = repo.CreatePricingDiscount(ctx, value)
		default:
			t.Fatalf("unsupported seed type %T", v)
		}
		if err != nil {
			t.Fatalf("failed to seed %T: %v", v, err)
		}
	}
}

func TestPingEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/ping", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetPricingModelEndpoint(t *testing.T) {
	router, repo := newTestServer(t)

	seedDB(t, repo,
		&ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true},
		&ds.Feature{Key: "seo", DisplayName: "SEO", CostIls: 1500, IsActive: true},
	)

	w := doRequest(router, http.MethodGet, "/api/pricing/model", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var model repository.PricingModel
	if err := json.Unmarshal(w.Body.Bytes(), &model); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(model.ProjectTypes) != 1 || model.ProjectTypes[0].Key != "landing" {
		t.Errorf("project types = %+v", model.ProjectTypes)
	}
	if model.Meta.PageCostPerPage != repository.DefaultPageCostPerPage {
		t.Errorf("pageCostPerPage = %v, want default", model.Meta.PageCostPerPage)
	}
}

func TestAdminRoutesRequireKey(t *testing.T) {
	router, _ := newTestServer(t)

	w := doRequest(router, http.MethodGet, "/api/admin/project-types", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/admin/project-types", nil, "wrong-key")
	if w.Code != http.StatusForbidden {
		t.Errorf("wrong key status = %d, want 403", w.Code)
	}

	w = doRequest(router, http.MethodGet, "/api/admin/project-types", nil, testAdminKey)
	if w.Code != http.StatusOK {
		t.Errorf("valid key status = %d, want 200", w.Code)
	}
}

func TestCreateProjectTypeEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	w := doRequest(router, http.MethodPost, "/api/admin/project-types", dto.CreateProjectTypeRequest{
		Key:         "landing",
		DisplayName: "Лендинг",
		BaseRateIls: 3000,
	}, testAdminKey)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var created dto.ProjectTypeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == 0 || !created.IsActive {
		t.Errorf("created = %+v", created)
	}

	// Без обязательного поля - 400
	w = doRequest(router, http.MethodPost, "/api/admin/project-types", gin.H{"key": "x2y"}, testAdminKey)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid body status = %d, want 400", w.Code)
	}
}

func TestCreateQuoteEndpoint(t *testing.T) {
	router, repo := newTestServer(t)

	seedDB(t, repo,
		&ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true},
		&ds.Feature{Key: "seo", DisplayName: "SEO", CostIls: 1500, IsActive: true},
	)

	w := doRequest(router, http.MethodPost, "/api/calculator/quote", dto.QuoteRequest{
		ProjectTypeKey: "landing",
		FeatureKeys:    []string{"seo"},
		Pages:          2,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var quote dto.QuoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &quote); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// 3000 + 1500 + 2*750 = 6000
	if quote.Total != 6000 {
		t.Errorf("total = %v, want 6000", quote.Total)
	}
	if quote.QuoteID == "" {
		t.Error("quote id is empty")
	}
}

func TestCreateQuoteUnknownProjectType(t *testing.T) {
	router, repo := newTestServer(t)

	seedDB(t, repo, &ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true})

	w := doRequest(router, http.MethodPost, "/api/calculator/quote", dto.QuoteRequest{
		ProjectTypeKey: "mobile",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRedeemDiscountEndpoint(t *testing.T) {
	router, repo := newTestServer(t)

	seedDB(t, repo, &ds.PricingDiscount{Code: "ONCE", DiscountType: "fixed", Amount: "50", MaxUses: intPtr(1), IsActive: true})

	w := doRequest(router, http.MethodPost, "/api/pricing/discounts/once/redeem", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("first redeem status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, "/api/pricing/discounts/ONCE/redeem", nil, "")
	if w.Code != http.StatusConflict {
		t.Errorf("exhausted redeem status = %d, want 409", w.Code)
	}

	w = doRequest(router, http.MethodPost, "/api/pricing/discounts/NOPE/redeem", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown code status = %d, want 404", w.Code)
	}
}

func intPtr(n int) *int { return &n }

func doImageUpload(router *gin.Engine, path, filename string, data []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, _ := mw.CreateFormFile("image", filename)
	_, _ = fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Admin-Key", testAdminKey)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetProjectTypeImagePresignedURL(t *testing.T) {
	images := newFakeImageStorage()
	router, repo := newTestServerWithImages(t, images)

	pt := &ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true}
	seedDB(t, repo, pt)
	if err := repo.UpdateProjectTypeImage(context.Background(), pt.ID, "img_logo.png"); err != nil {
		t.Fatalf("failed to set image: %v", err)
	}

	w := doRequest(router, http.MethodGet, fmt.Sprintf("/api/admin/project-types/%d", pt.ID), nil, testAdminKey)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp dto.ProjectTypeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ImageURL == nil || *resp.ImageURL != "http://images.local/img_logo.png?signature=test" {
		t.Errorf("image url = %v, want presigned link", resp.ImageURL)
	}

	// В списке изображение тоже отдается ссылкой
	w = doRequest(router, http.MethodGet, "/api/admin/project-types", nil, testAdminKey)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	var list dto.ProjectTypeListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list.ProjectTypes) != 1 || list.ProjectTypes[0].ImageURL == nil ||
		*list.ProjectTypes[0].ImageURL != "http://images.local/img_logo.png?signature=test" {
		t.Errorf("list image url = %+v", list.ProjectTypes)
	}
}

func TestUploadProjectTypeImageEndpoint(t *testing.T) {
	images := newFakeImageStorage()
	router, repo := newTestServerWithImages(t, images)

	pt := &ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true}
	seedDB(t, repo, pt)

	path := fmt.Sprintf("/api/admin/project-types/%d/image", pt.ID)
	w := doImageUpload(router, path, "logo.png", []byte("png-bytes"))
	if w.Code != http.StatusOK {
		t.Fatalf("upload status = %d, want 200: %s", w.Code, w.Body.String())
	}

	saved, err := repo.GetProjectTypeByID(context.Background(), pt.ID)
	if err != nil {
		t.Fatalf("failed to reload project type: %v", err)
	}
	if saved.ImageURL == nil || *saved.ImageURL != "img_logo.png" {
		t.Fatalf("saved image = %v, want img_logo.png", saved.ImageURL)
	}

	// Повторная загрузка вычищает старый объект из хранилища
	w = doImageUpload(router, path, "new.png", []byte("new-bytes"))
	if w.Code != http.StatusOK {
		t.Fatalf("second upload status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if len(images.deleted) != 1 || images.deleted[0] != "img_logo.png" {
		t.Errorf("deleted objects = %v, want [img_logo.png]", images.deleted)
	}
	if _, ok := images.objects["img_new.png"]; !ok {
		t.Error("new image is not in storage")
	}
}

func TestUploadProjectTypeImageWithoutStorage(t *testing.T) {
	router, repo := newTestServer(t)

	pt := &ds.ProjectType{Key: "landing", DisplayName: "Лендинг", BaseRateIls: 3000, IsActive: true}
	seedDB(t, repo, pt)

	path := fmt.Sprintf("/api/admin/project-types/%d/image", pt.ID)
	w := doImageUpload(router, path, "logo.png", []byte("png-bytes"))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestGetMetaSettingEndpoint(t *testing.T) {
	router, repo := newTestServer(t)

	seedDB(t, repo, &ds.MetaSetting{Key: "rangePercent", Value: ds.JSON(`{"value": 0.18}`), IsActive: true})

	w := doRequest(router, http.MethodGet, "/api/admin/meta/rangePercent", nil, testAdminKey)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var setting dto.MetaSettingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &setting); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if setting.Key != "rangePercent" {
		t.Errorf("key = %q, want rangePercent", setting.Key)
	}
	var payload struct {
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(setting.Value, &payload); err != nil {
		t.Fatalf("failed to decode value: %v", err)
	}
	if payload.Value != 0.18 {
		t.Errorf("value = %v, want 0.18", payload.Value)
	}

	w = doRequest(router, http.MethodGet, "/api/admin/meta/unknown", nil, testAdminKey)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown key status = %d, want 404", w.Code)
	}
}

func TestQuoteTokenRoundTrip(t *testing.T) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Token:         "test",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}
	h := NewAPIHandler(nil, nil, nil, cfg)

	token, err := h.signQuoteToken("abc-123")
	if err != nil {
		t.Fatalf("signQuoteToken: %v", err)
	}

	if !h.verifyQuoteToken(token, "abc-123") {
		t.Error("valid token rejected")
	}
	if h.verifyQuoteToken(token, "other-id") {
		t.Error("token accepted for another quote")
	}
	if h.verifyQuoteToken("garbage", "abc-123") {
		t.Error("garbage token accepted")
	}
}
