// Package activecampaign implements the driven CRM ports against the
// ActiveCampaign v3 REST API.
//
// The adapter handles authentication (Api-Token header), offset
// pagination of the note listing, transient-error retries, and mapping
// of HTTP responses onto the domain error sentinels. Every request
// passes through the shared rate-limit gate before it is issued.
package activecampaign
