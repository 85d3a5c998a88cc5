package domain

import "strings"

// RepaymentStatus is the workflow status of a ledger entry.
type RepaymentStatus string

const (
	StatusFuture              RepaymentStatus = "Future"
	StatusOverdue             RepaymentStatus = "Overdue"
	StatusPartiallyPaid       RepaymentStatus = "Partially Paid"
	StatusPaid                RepaymentStatus = "Paid"
	StatusForeclose           RepaymentStatus = "Foreclose"
	StatusPendingApproval     RepaymentStatus = "PendingApproval"
	StatusPaidPendingApproval RepaymentStatus = "Paid(PendingApproval)"
	StatusPaidRejected        RepaymentStatus = "PaidRejected"
)

// RepaymentStatuses lists the vocabulary in workflow order.
var RepaymentStatuses = []RepaymentStatus{
	StatusFuture,
	StatusOverdue,
	StatusPartiallyPaid,
	StatusPaid,
	StatusForeclose,
	StatusPendingApproval,
	StatusPaidPendingApproval,
	StatusPaidRejected,
}

// IsValid reports whether s belongs to the repayment status vocabulary.
func (s RepaymentStatus) IsValid() bool {
	for _, v := range RepaymentStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// DemandCallingStatus is the outcome of a payment-demand call.
type DemandCallingStatus string

const (
	DemandDepositedInBank DemandCallingStatus = "deposited in bank"
	DemandCashCollected   DemandCallingStatus = "cash collected"
	DemandPTPTaken        DemandCallingStatus = "PTP taken"
	DemandNoResponse      DemandCallingStatus = "no response"
)

var demandCallingStatuses = []DemandCallingStatus{
	DemandDepositedInBank,
	DemandCashCollected,
	DemandPTPTaken,
	DemandNoResponse,
}

func (s DemandCallingStatus) IsValid() bool {
	for _, v := range demandCallingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ContactCallingStatus is the outcome of an outreach call to a contact.
type ContactCallingStatus string

const (
	ContactAnswered    ContactCallingStatus = "answered"
	ContactNotAnswered ContactCallingStatus = "not answered"
	ContactNotCalled   ContactCallingStatus = "not called"
)

var contactCallingStatuses = []ContactCallingStatus{
	ContactAnswered,
	ContactNotAnswered,
	ContactNotCalled,
}

func (s ContactCallingStatus) IsValid() bool {
	for _, v := range contactCallingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ContactRole identifies who on the loan was called.
type ContactRole string

const (
	RoleApplicant   ContactRole = "Applicant"
	RoleCoApplicant ContactRole = "CoApplicant"
	RoleGuarantor   ContactRole = "Guarantor"
	RoleReference   ContactRole = "Reference"
)

// ContactRoles lists every role a ContactCalling entry may target.
var ContactRoles = []ContactRole{RoleApplicant, RoleCoApplicant, RoleGuarantor, RoleReference}

func (r ContactRole) IsValid() bool {
	for _, v := range ContactRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ParseContactRole accepts the canonical names plus the hyphenated
// "Co-Applicant" spelling used by agents.
func ParseContactRole(s string) (ContactRole, bool) {
	if strings.EqualFold(s, "Co-Applicant") {
		return RoleCoApplicant, true
	}
	for _, v := range ContactRoles {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// CallingChannel separates role-specific outreach from payment-demand calls.
type CallingChannel string

const (
	ChannelContactCalling CallingChannel = "ContactCalling"
	ChannelDemandCalling  CallingChannel = "DemandCalling"
)

func (c CallingChannel) IsValid() bool {
	return c == ChannelContactCalling || c == ChannelDemandCalling
}

// IsValidCallStatus checks status against the vocabulary of the given channel.
func IsValidCallStatus(channel CallingChannel, status string) bool {
	switch channel {
	case ChannelDemandCalling:
		return DemandCallingStatus(status).IsValid()
	case ChannelContactCalling:
		return ContactCallingStatus(status).IsValid()
	}
	return false
}
