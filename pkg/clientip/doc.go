// Package clientip resolves the originating client IP of an HTTP request,
// looking through common reverse-proxy headers before falling back to the
// socket address. Spoofable headers are only as trustworthy as the proxy in
// front of the server; deployments without a proxy should rely on the
// RemoteAddr fallback.
package clientip
