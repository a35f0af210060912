// Package validation checks the arguments and Config fields of lazyflow
// packages: chunk sizes in seq, the cron expression in schedule, the client,
// key and batch settings in redislist.
//
// Every helper returns nil or a *errors.ValidationError naming the module and
// field, so failures match errors.Is(err, errors.ErrInvalidArgument) wherever
// they surface: from a constructor, a Validate method, or the first pull of a
// traversal.
package validation
