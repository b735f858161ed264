package site

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/sensorboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a site handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the site handler", func() {
			So(Register(ctx, mux, logger.NewNop()), ShouldBeNil)

			Convey("Then it should render the index page at /", func() {
				req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.Len(), ShouldBeGreaterThan, 0)
				So(w.Body.String(), ShouldContainSubstring, "<title>Sensor Dashboard</title>")
				So(w.Body.String(), ShouldContainSubstring, `src="/static/js/app.js"`)
			})

			Convey("And rendering twice should give identical pages", func() {
				first := httptest.NewRecorder()
				mux.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
				second := httptest.NewRecorder()
				mux.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

				So(first.Body.String(), ShouldEqual, second.Body.String())
			})

			Convey("And it should serve the dashboard script", func() {
				req := httptest.NewRequest(http.MethodGet, "/static/js/app.js", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "performanceData")
			})

			Convey("And it should not list asset directories", func() {
				for _, path := range []string{"/static/", "/static/js/", "/static/js"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

					So(w.Code, ShouldEqual, http.StatusNotFound)
					So(w.Body.String(), ShouldNotContainSubstring, "app.js")
				}
			})

			Convey("And it should not catch other paths", func() {
				req := httptest.NewRequest(http.MethodGet, "/some-asset", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And it should reject POST to /", func() {
				req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestRootHandlerRenderFailure(t *testing.T) {
	Convey("Given a template that fails during execution", t, func() {
		tmpl := template.Must(template.New("index.html").Parse(`{{.Missing}}`))
		h := newRootHandler(tmpl, DefaultPage, nil)

		Convey("When rendering", func() {
			w := httptest.NewRecorder()
			h.HandleRoot(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

			Convey("Then it should answer 500 without partial HTML", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
				So(w.Body.String(), ShouldNotContainSubstring, "<html")
			})
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		So(ErrRender.Error(), ShouldEqual, "dashboard page render failed")
		So(ErrServe.Error(), ShouldEqual, "dashboard page serve failed")
		So(ErrRender, ShouldNotEqual, ErrServe)
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering should panic", func() {
			So(func() {
				_ = Register(context.Background(), nil, nil)
			}, ShouldPanic)
		})
	})
}
