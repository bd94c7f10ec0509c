package middleware

import (
	"context"
	"net/http"

	"github.com/mssola/useragent"
)

type contextKeyDevice struct{}

var ContextKeyDevice = contextKeyDevice{}

// Device is a compact description of the visiting client, attached to audit
// events for forensic context.
type Device struct {
	Browser string
	OS      string
	Mobile  bool
	Bot     bool
}

func (d Device) String() string {
	if d.Browser == "" && d.OS == "" {
		return "unknown"
	}
	return d.Browser + "/" + d.OS
}

// GetDevice retrieves the parsed client device from the context.
func GetDevice(ctx context.Context) Device {
	device, ok := ctx.Value(ContextKeyDevice).(Device)
	if !ok {
		return Device{}
	}
	return device
}

// DeviceInfo parses the User-Agent header once per request so downstream
// audit emission does not repeat the work.
func DeviceInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := useragent.New(r.UserAgent())
		browser, version := ua.Browser()
		device := Device{
			Browser: browser + " " + version,
			OS:      ua.OS(),
			Mobile:  ua.Mobile(),
			Bot:     ua.Bot(),
		}
		if r.UserAgent() == "" {
			device = Device{}
		}
		ctx := context.WithValue(r.Context(), ContextKeyDevice, device)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
