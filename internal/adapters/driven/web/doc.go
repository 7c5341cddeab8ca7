// Package web provides the network-backed driven adapters: the OpenSearch
// suggestion client and the direct-answer API client.
package web
