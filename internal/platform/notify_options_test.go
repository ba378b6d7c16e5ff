package platform

import "testing"

func TestOptionDefaults(t *testing.T) {
	var o Options
	if o.appName() != DefaultAppName || o.timeout() != 5000 {
		t.Fatalf("defaults = %q %d", o.appName(), o.timeout())
	}
	o = Options{AppName: "x", TimeoutMillis: 10}
	if o.appName() != "x" || o.timeout() != 10 {
		t.Fatalf("overrides = %q %d", o.appName(), o.timeout())
	}
}
