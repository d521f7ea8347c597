// Package http is the transport used by axotly to execute tests.
//
// It wraps the standard library's http package with additional features:
//   - Configurable timeouts, redirects, proxy and TLS verification
//   - Request building from the parsed AST
//   - Classified transport errors (timeout, dns, connection, cancelled)
//   - Reproducible curl commands for failed requests
package http
