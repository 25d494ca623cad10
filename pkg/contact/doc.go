// Package contact implements the contact form of the site: field validation,
// the progressive phone mask and the submission controller. The controller is
// split in two layers. Reduce is a pure transition function returning the next
// State plus the deferred Effects (timer schedules and cancellations) the
// transition asks for. Controller owns the timer handles, applies those effects
// through a Scheduler and funnels timer callbacks back through a single Loop so
// every transition runs to completion before the next one starts.
package contact
