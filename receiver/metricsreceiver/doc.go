// Package metricsreceiver provides a receiver that turns the log stream
// into Prometheus metrics:
//
//   - nlogcast_messages_total{level,sender} counts received messages.
//   - nlogcast_last_message_elapsed_seconds holds the logger uptime at the
//     latest message.
//
// Message bodies are never used as labels. The sender is, so every distinct
// sender tag adds one series per level: keep senders to a fixed set of
// component names and never put request ids or other unbounded values in
// them.
package metricsreceiver
