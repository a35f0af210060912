// Package context holds the non-blocking context probes lazyflow runs
// between element pulls.
//
// Traversal loops in seq call Check before every pull, so a canceled context
// ends even a diverging Filter without the loop ever blocking on Done.
// redislist uses OwnDeadline to tell a per-command timeout apart from the
// caller giving up.
package context
