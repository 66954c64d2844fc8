package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/diillson/aws-external-assets-go/internal/domain/entity"
	"github.com/diillson/aws-external-assets-go/internal/domain/repository"
	"github.com/diillson/aws-external-assets-go/internal/shared/types"
	"github.com/stretchr/testify/mock"
)

type mockAWSRepo struct {
	mock.Mock
}

func (m *mockAWSRepo) CheckCredentials(ctx context.Context, profile string) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *mockAWSRepo) GetAccountID(ctx context.Context, profile string) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *mockAWSRepo) GetAccessibleRegions(ctx context.Context, profile string) ([]string, error) {
	args := m.Called(ctx, profile)
	regions, _ := args.Get(0).([]string)
	return regions, args.Error(1)
}

func (m *mockAWSRepo) Collectors(profile string, regions []string) []repository.ResourceCollector {
	args := m.Called(profile, regions)
	collectors, _ := args.Get(0).([]repository.ResourceCollector)
	return collectors
}

// fakeRaw carries a ready-made record through Fetch.
type fakeRaw struct {
	record entity.ResourceRecord
	bad    bool
}

func (r fakeRaw) ResourceType() entity.ResourceType { return r.record.Type }

type fakeCollector struct {
	t       entity.ResourceType
	raw     []entity.RawRecord
	err     error
	panics  bool
	fetched int
	mu      sync.Mutex
}

func newFakeCollector(t entity.ResourceType, endpoints ...string) *fakeCollector {
	c := &fakeCollector{t: t}
	for i, ep := range endpoints {
		c.raw = append(c.raw, fakeRaw{record: entity.ResourceRecord{
			Type:     t,
			Name:     fmt.Sprintf("%s-%d", t, i),
			Endpoint: ep,
		}})
	}
	return c
}

func (c *fakeCollector) ResourceType() entity.ResourceType { return c.t }

func (c *fakeCollector) Fetch(ctx context.Context) ([]entity.RawRecord, error) {
	c.mu.Lock()
	c.fetched++
	c.mu.Unlock()
	if c.panics {
		panic("collector bug")
	}
	return c.raw, c.err
}

func (c *fakeCollector) Normalize(raw entity.RawRecord) ([]entity.ResourceRecord, error) {
	r := raw.(fakeRaw)
	if r.bad {
		return nil, &entity.NormalizationError{Type: c.t, Reason: "bad"}
	}
	return []entity.ResourceRecord{r.record}, nil
}

// recordingExport keeps every run it was asked to write and names files like the real exporter.
type recordingExport struct {
	runs []*entity.CollectionRun
	err  error
}

func (e *recordingExport) write(run *entity.CollectionRun, reportName, dir, ext string) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	e.runs = append(e.runs, run)
	name := fmt.Sprintf("%s_%s.%s", run.AccountID, run.Timestamp.Format("20060102150405"), ext)
	if reportName != "" {
		name = reportName + "_" + name
	}
	return dir + "/" + name, nil
}

func (e *recordingExport) ExportToXLSX(run *entity.CollectionRun, reportName, dir string) (string, error) {
	return e.write(run, reportName, dir, "xlsx")
}

func (e *recordingExport) ExportToCSV(run *entity.CollectionRun, reportName, dir string) (string, error) {
	return e.write(run, reportName, dir, "csv")
}

func (e *recordingExport) ExportToJSON(run *entity.CollectionRun, reportName, dir string) (string, error) {
	return e.write(run, reportName, dir, "json")
}

func (e *recordingExport) ExportToPDF(run *entity.CollectionRun, reportName, dir string) (string, error) {
	return e.write(run, reportName, dir, "pdf")
}

type stubConfigRepo struct {
	cfg *types.Config
	err error
}

func (s *stubConfigRepo) LoadConfigFile(string) (*types.Config, error) {
	return s.cfg, s.err
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) UploadReport(ctx context.Context, profile, localPath, bucket, prefix string) (string, error) {
	args := m.Called(ctx, profile, localPath, bucket, prefix)
	return args.String(0), args.Error(1)
}

// silentConsole discards output but remembers warnings and errors.
type silentConsole struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (c *silentConsole) Println(a ...interface{})                   {}
func (c *silentConsole) LogInfo(format string, a ...interface{})    {}
func (c *silentConsole) LogSuccess(format string, a ...interface{}) {}

func (c *silentConsole) LogWarning(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *silentConsole) LogError(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *silentConsole) Status(string) types.StatusHandle { return noopStatus{} }
func (c *silentConsole) CreateTable() types.TableInterface  { return &noopTable{} }

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type noopTable struct {
	rows [][]interface{}
}

func (t *noopTable) AddColumn(string, ...interface{}) {}
func (t *noopTable) AddRow(cells ...interface{})     { t.rows = append(t.rows, cells) }
func (t *noopTable) Render() string                  { return "" }
