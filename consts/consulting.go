package consts

// defaults applied to optional fields of a new consulting request
const (
	DefaultProjectType             = "General Consulting"
	DefaultBudget                  = "Not specified"
	DefaultTimeline                = "Flexible"
	DefaultCommunicationPreference = "email"
)

// defaults applied to a new communication record
const (
	DefaultCommunicationMethod = "email"
	CommunicationCreator       = "admin"
)

// StatusFilterAll disables the status filter of the admin dashboard
const StatusFilterAll = "all"

const NotifyTaskName = "notify_consulting_request"
