package kafka

const (
	TopicTicketIssued     = "counter.ticket.issued"
	TopicTicketCalled     = "counter.ticket.called"
	TopicCallCancelled    = "counter.call.cancelled"
	TopicTicketSkipped    = "counter.ticket.skipped"
	TopicTicketWithdrawn  = "counter.ticket.withdrawn"
	TopicSessionCompleted = "counter.session.completed"
	TopicDayClosed        = "counter.day.closed"

	TopicAppointmentCheckedIn = "appointment.checked_in"
)

const (
	SourceReception   = "reception"
	SourceAppointment = "appointment"

	ReasonCallCancelled    = "call_cancelled"
	ReasonHistoryCancelled = "history_cancelled"
)
