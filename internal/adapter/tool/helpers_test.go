package tool

import (
	"context"
	"errors"
	"fmt"

	"pdf-agent/internal/application/port/output"
	"pdf-agent/internal/domain/entity"
	"pdf-agent/internal/domain/whitespace"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }

func (nopLogger) Close() error { return nil }

type extractCall struct {
	start, end int
}

// fakeEngine records calls and returns deterministic synthetic bytes.
type fakeEngine struct {
	pages        int
	pageW, pageH float64
	failWith     error

	extractCalls   []extractCall
	mergeCalls     [][][]byte
	reorderCalls   [][]int
	watermarkOpts  []output.WatermarkOptions
	pageNumberOpts []output.PageNumberOptions
	stampOpts      []output.StampOptions
}

func newFakeEngine(pages int) *fakeEngine {
	return &fakeEngine{pages: pages, pageW: 612, pageH: 792}
}

func (f *fakeEngine) PageCount(context.Context, []byte) (int, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return f.pages, nil
}

func (f *fakeEngine) PageSize(context.Context, []byte, int) (float64, float64, error) {
	if f.failWith != nil {
		return 0, 0, f.failWith
	}
	return f.pageW, f.pageH, nil
}

func (f *fakeEngine) ExtractPages(_ context.Context, _ []byte, start, end int) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.extractCalls = append(f.extractCalls, extractCall{start: start, end: end})
	return []byte(fmt.Sprintf("extract-%d-%d", start, end)), nil
}

func (f *fakeEngine) Merge(_ context.Context, docs [][]byte) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.mergeCalls = append(f.mergeCalls, docs)
	return []byte("merged"), nil
}

func (f *fakeEngine) Reorder(_ context.Context, _ []byte, order []int) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.reorderCalls = append(f.reorderCalls, order)
	return []byte("reordered"), nil
}

func (f *fakeEngine) Watermark(_ context.Context, _ []byte, opts output.WatermarkOptions) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.watermarkOpts = append(f.watermarkOpts, opts)
	return []byte("watermarked"), nil
}

func (f *fakeEngine) AddPageNumbers(_ context.Context, _ []byte, opts output.PageNumberOptions) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.pageNumberOpts = append(f.pageNumberOpts, opts)
	return []byte("numbered"), nil
}

func (f *fakeEngine) StampText(_ context.Context, _ []byte, opts output.StampOptions) ([]byte, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	f.stampOpts = append(f.stampOpts, opts)
	return []byte("stamped"), nil
}

// fakeStorage keeps files in memory, keyed by URL.
type fakeStorage struct {
	files   map[string][]byte
	uploads int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) put(url string, data []byte) {
	f.files[url] = data
}

func (f *fakeStorage) Upload(_ context.Context, _ string, data []byte, _ string) (string, string, error) {
	f.uploads++
	id := fmt.Sprintf("rev-%d", f.uploads)
	url := "/files/" + id + ".pdf"
	f.files[url] = data
	return id, url, nil
}

func (f *fakeStorage) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := f.files[url]
	if !ok {
		return nil, errors.New("not stored: " + url)
	}
	return data, nil
}

// fakeRasterizer returns a fixed raster; value 255 is an all-clear page.
type fakeRasterizer struct {
	width, height int
	value         uint8
	err           error
}

func (f *fakeRasterizer) RasterizePage(_ context.Context, _ []byte, _ int, scale float64) (*whitespace.Raster, output.PageGeometry, error) {
	if f.err != nil {
		return nil, output.PageGeometry{}, f.err
	}
	pix := make([]uint8, f.width*f.height)
	for i := range pix {
		pix[i] = f.value
	}
	raster, err := whitespace.NewRaster(pix, f.width, f.height, f.width)
	if err != nil {
		return nil, output.PageGeometry{}, err
	}
	geom := output.PageGeometry{
		Width:  float64(f.width) / scale,
		Height: float64(f.height) / scale,
		Scale:  scale,
	}
	return raster, geom, nil
}

type testEnv struct {
	deps   Deps
	engine *fakeEngine
	store  *fakeStorage
	tcx    *output.ToolContext
}

// newTestEnv wires the fakes around one original five-page document d1.
func newTestEnv(pages int) *testEnv {
	engine := newFakeEngine(pages)
	store := newFakeStorage()
	store.put("/files/d1.pdf", []byte("source pdf"))

	docs := entity.NewDocumentSet([]entity.Document{
		{
			ID:        "d1",
			Name:      "report.pdf",
			URL:       "/files/d1.pdf",
			Kind:      entity.DocumentOriginal,
			PageCount: pages,
			Pages:     fmt.Sprintf("1-%d", pages),
		},
	})

	return &testEnv{
		engine: engine,
		store:  store,
		deps: Deps{
			Engine:     engine,
			Rasterizer: &fakeRasterizer{width: 612, height: 792, value: 255},
			Storage:    store,
			Logger:     nopLogger{},
		},
		tcx: &output.ToolContext{
			SessionID: "s1",
			Documents: docs,
		},
	}
}
