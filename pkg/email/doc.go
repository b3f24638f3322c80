// Package email delivers notifications over email through Postmark.
//
// The deliverer is an out-of-band channel for the notification system:
// only notifications at or above the configured priority are mailed, the
// rest rely on the in-app feed. Recipient addresses are resolved through a
// caller-supplied lookup since the notification model carries target
// references, not addresses.
package email
