// Package api defines the request and response messages of the tallyup.v1
// services. Messages travel as JSON; amounts are decimal strings such as
// "12.50".
package api
