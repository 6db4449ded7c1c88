package wellknown_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/appassoc/pkg/domain/interfaces"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/infra/wellknown"
	"github.com/m-mizutani/gt"
)

func newTestClient(server *httptest.Server, opts ...wellknown.Option) interfaces.WellKnownClient {
	opts = append([]wellknown.Option{
		wellknown.WithHTTPClient(server.Client()),
		wellknown.WithAppSiteAssociationURL(server.URL + "/a/v1/{domain}"),
		wellknown.WithAssetLinksURL(server.URL + "/www.{domain}/.well-known/assetlinks.json"),
	}, opts...)
	return wellknown.NewClient(opts...)
}

func TestClient_FetchAppSiteAssociation(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"applinks": {"details": [{"appID": "ABC.com.example", "paths": ["/*"]}]},
			"webcredentials": {"apps": ["ABC.com.example"]}
		}`))
	}))
	defer server.Close()

	c := newTestClient(server)
	doc, err := c.FetchAppSiteAssociation(context.Background(), "example.com")
	gt.NoError(t, err)

	gt.Value(t, captured.URL.Path).Equal("/a/v1/example.com")
	gt.String(t, captured.Header.Get("User-Agent")).Contains("Chrome/125.0.6422.112")
	gt.Value(t, captured.Header.Get("Accept")).Equal("application/json, text/plain, */*")
	gt.Value(t, captured.Header.Get("Content-Type")).Equal("application/json")

	gt.Value(t, doc.AppLinks).NotNil()
	gt.A(t, doc.AppLinks.Details).Length(1)
	gt.Value(t, doc.AppLinks.Details[0].AppID).Equal("ABC.com.example")
	gt.A(t, doc.AppLinks.Details[0].Paths).Length(1)
	gt.A(t, doc.WebCredentials.Apps).Length(1)
}

func TestClient_ConfiguredHeaderReplacesFixedHeader(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server, wellknown.WithHeader("user-agent", "appassoc-test"))
	_, err := c.FetchAppSiteAssociation(context.Background(), "example.com")
	gt.NoError(t, err)

	gt.Value(t, captured.Header.Values("User-Agent")).Equal([]string{"appassoc-test"})
	// keys that were not configured keep the fixed value
	gt.Value(t, captured.Header.Values("Accept")).Equal([]string{"application/json, text/plain, */*"})
}

func TestClient_FetchAssetLinks(t *testing.T) {
	var captured *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		_, _ = w.Write([]byte(`[{
			"relation": ["delegate_permission/common.handle_all_urls"],
			"target": {
				"namespace": "android_app",
				"package_name": "com.example.app",
				"sha256_cert_fingerprints": ["AA:BB", "CC:DD"]
			}
		}]`))
	}))
	defer server.Close()

	c := newTestClient(server, wellknown.WithHeader("X-Test", "yes"))
	links, err := c.FetchAssetLinks(context.Background(), "example.com")
	gt.NoError(t, err)

	gt.Value(t, captured.URL.Path).Equal("/www.example.com/.well-known/assetlinks.json")
	gt.Value(t, captured.Header.Get("X-Test")).Equal("yes")
	gt.False(t, strings.Contains(captured.Header.Get("User-Agent"), "Chrome"))

	gt.A(t, links).Length(1)
	gt.Value(t, links[0].Target.PackageName).Equal("com.example.app")
	gt.Value(t, links[0].Target.Namespace).Equal("android_app")
	gt.A(t, links[0].Target.SHA256CertFingerprints).Length(2)
	gt.A(t, links[0].Relation).Length(1)
}

func TestClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	}))
	defer server.Close()

	c := newTestClient(server)

	t.Run("app site association", func(t *testing.T) {
		doc, err := c.FetchAppSiteAssociation(context.Background(), "example.com")
		gt.Error(t, err)
		gt.Value(t, doc).Nil()

		var fetchErr *model.FetchError
		gt.True(t, errors.As(err, &fetchErr))
		gt.Value(t, fetchErr.StatusCode).Equal(http.StatusNotFound)
		gt.Value(t, fetchErr.URL).Equal(server.URL + "/a/v1/example.com")
		gt.String(t, err.Error()).Contains("returned status code 404")
	})

	t.Run("assetlinks", func(t *testing.T) {
		links, err := c.FetchAssetLinks(context.Background(), "example.com")
		gt.Error(t, err)
		gt.Value(t, links).Nil()

		var fetchErr *model.FetchError
		gt.True(t, errors.As(err, &fetchErr))
		gt.String(t, fetchErr.URL).Contains("/.well-known/assetlinks.json")
	})
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// assetlinks.json must be an array
		_, _ = w.Write([]byte(`{"relation": []}`))
	}))
	defer server.Close()

	c := newTestClient(server)
	_, err := c.FetchAssetLinks(context.Background(), "example.com")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to decode JSON response")

	var fetchErr *model.FetchError
	gt.False(t, errors.As(err, &fetchErr))
}
