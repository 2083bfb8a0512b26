package pdf

import (
	"context"
	"net"
	"net/http"

	"github.com/fwojciec/skillet"
)

// ExtractBuffer extracts a recipe from an in-memory PDF. The browser can
// only navigate to URLs, so the buffer is served from a loopback HTTP
// listener for the duration of the extraction.
func (e *Extractor) ExtractBuffer(ctx context.Context, data []byte) (*skillet.Recipe, error) {
	if len(data) == 0 {
		return nil, skillet.Errorf(skillet.EINVALID, "empty pdf buffer")
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, skillet.Errorf(skillet.EINTERNAL, "starting loopback listener: %v", err)
	}

	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write(data)
		}),
	}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	return e.Extract(ctx, "http://"+ln.Addr().String()+"/document.pdf")
}
