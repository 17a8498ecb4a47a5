// Package schedule runs wrapped units on recurring schedules.
//
// This package includes:
//   - Schedule interface for defining when an entry runs
//   - Every() for fixed-interval schedules
//   - Daily() for daily schedules at a specific time
//   - Weekly() for weekly schedules on a specific day and time
//   - Cron() and ParseCron() for cron expression-based schedules
//   - Runner, which invokes a core.Invoker whenever an entry is due
//
// Most users should import the root package
// github.com/jdziat/simple-invocation-wrappers which re-exports these
// functions.
package schedule
