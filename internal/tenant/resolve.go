package tenant

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/noah-isme/storefront-core/internal/common"
	"github.com/noah-isme/storefront-core/internal/obs"
)

// LookupType says how a storefront host maps onto a store.
type LookupType string

const (
	LookupMissing  LookupType = "missing"
	LookupPlatform LookupType = "platform"
	LookupSlug     LookupType = "slug"
	LookupDomain   LookupType = "domain"
)

// Lookup is the result of classifying a Host header.
type Lookup struct {
	Type LookupType
	Key  string
}

// ErrStoreUnavailable is returned by finders when no active store matches.
var ErrStoreUnavailable = errors.New("store unavailable")

// StoreFinder resolves a lookup into a store identifier.
type StoreFinder func(ctx context.Context, l Lookup) (string, error)

// Resolver classifies storefront hosts as platform pages, platform subdomains or custom domains.
type Resolver struct {
	RootDomain    string
	PlatformHosts map[string]struct{}
}

// NewResolver returns a resolver for rootDomain. The root domain and its www
// variant are always treated as platform hosts.
func NewResolver(rootDomain string, platformHosts []string) *Resolver {
	root := strings.ToLower(strings.TrimSpace(rootDomain))
	hosts := make(map[string]struct{}, len(platformHosts)+2)
	for _, h := range platformHosts {
		if h = normalizeHost(h); h != "" {
			hosts[h] = struct{}{}
		}
	}
	if root != "" {
		hosts[root] = struct{}{}
		hosts["www."+root] = struct{}{}
	}
	return &Resolver{RootDomain: root, PlatformHosts: hosts}
}

// Resolve classifies a raw Host header value.
func (r *Resolver) Resolve(rawHost string) Lookup {
	host := normalizeHost(rawHost)
	if host == "" {
		return Lookup{Type: LookupMissing}
	}
	if r == nil {
		return Lookup{Type: LookupDomain, Key: hostWithoutPort(host)}
	}
	if _, ok := r.PlatformHosts[host]; ok {
		return Lookup{Type: LookupPlatform}
	}
	bare := hostWithoutPort(host)
	if _, ok := r.PlatformHosts[bare]; ok {
		return Lookup{Type: LookupPlatform}
	}
	if r.RootDomain != "" && strings.HasSuffix(bare, "."+r.RootDomain) {
		sub := strings.TrimSuffix(bare, "."+r.RootDomain)
		if sub != "" && !strings.Contains(sub, ".") {
			return Lookup{Type: LookupSlug, Key: sub}
		}
	}
	return Lookup{Type: LookupDomain, Key: bare}
}

// Middleware resolves the store behind the Host header and stores its id in the context.
func (r *Resolver) Middleware(find StoreFinder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			lookup := r.Resolve(req.Host)
			if lookup.Type == LookupMissing || lookup.Type == LookupPlatform {
				common.WriteError(w, common.NotFound("STORE_UNAVAILABLE", "Store not found or inactive."))
				return
			}
			storeID, err := find(req.Context(), lookup)
			if err != nil {
				if errors.Is(err, ErrStoreUnavailable) {
					common.WriteError(w, common.NotFound("STORE_UNAVAILABLE", "Store not found or inactive."))
					return
				}
				common.WriteError(w, err)
				return
			}
			obs.AnnotateLogger(req.Context(), "store_id", storeID)
			next.ServeHTTP(w, req.WithContext(WithTenant(req.Context(), storeID)))
		})
	}
}

func normalizeHost(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func hostWithoutPort(hostport string) string {
	hostport = strings.TrimSpace(hostport)
	if hostport == "" {
		return ""
	}
	if strings.HasPrefix(hostport, "[") {
		if idx := strings.Index(hostport, "]"); idx != -1 {
			host := hostport[1:idx]
			if host != "" {
				return host
			}
		}
	}
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		return h
	}
	return hostport
}
