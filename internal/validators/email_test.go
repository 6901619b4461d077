package validators

import (
	"context"
	"errors"
	"net"
	"testing"
)

type fakeResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if mx, ok := f.mx[name]; ok {
		return mx, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if ips, ok := f.ips[host]; ok {
		return ips, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainChecker(t *testing.T) {
	checker := NewEmailDomainChecker(fakeResolver{
		mx:  map[string][]*net.MX{"clinic.test": {{Host: "mail.clinic.test.", Pref: 10}}},
		ips: map[string][]net.IPAddr{"a-only.test": {{IP: net.IPv4(10, 0, 0, 1)}}},
	})

	tests := map[string]bool{
		"ana@clinic.test":  true,
		"bob@a-only.test":  true,
		"eve@nowhere.test": false,
		"no-at-sign":       false,
		"trailing@":        false,
	}

	for email, want := range tests {
		if got := checker.Valid(context.Background(), email); got != want {
			t.Errorf("Valid(%q) = %v, want %v", email, got, want)
		}
	}
}
