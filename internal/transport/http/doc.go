// Package http contains the HTTP handlers for the delivery analytics
// dashboard: the server-rendered dashboard page, the JSON aggregate
// API, the chart image endpoints and report generation.
package http
