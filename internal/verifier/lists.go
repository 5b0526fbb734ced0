package verifier

// disposableDomains covers the throwaway providers most commonly seen in
// signup abuse. Not exhaustive; unknown providers simply skip the penalty.
var disposableDomains = map[string]bool{
	"10minutemail.com":   true,
	"guerrillamail.com":  true,
	"mailinator.com":     true,
	"tempmail.com":       true,
	"temp-mail.org":      true,
	"throwawaymail.com":  true,
	"yopmail.com":        true,
	"getnada.com":        true,
	"trashmail.com":      true,
	"sharklasers.com":    true,
	"guerrillamail.info": true,
	"maildrop.cc":        true,
	"dispostable.com":    true,
	"fakeinbox.com":      true,
	"mintemail.com":      true,
}

// roleAccounts are local parts addressed to a function rather than a person.
var roleAccounts = map[string]bool{
	"admin":      true,
	"billing":    true,
	"contact":    true,
	"help":       true,
	"hr":         true,
	"info":       true,
	"jobs":       true,
	"marketing":  true,
	"no-reply":   true,
	"noreply":    true,
	"office":     true,
	"postmaster": true,
	"sales":      true,
	"security":   true,
	"support":    true,
	"team":       true,
	"webmaster":  true,
}

// freeProviders are consumer mailbox providers (signal only, no penalty).
var freeProviders = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"yahoo.co.uk":    true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"msn.com":        true,
	"aol.com":        true,
	"icloud.com":     true,
	"me.com":         true,
	"proton.me":      true,
	"protonmail.com": true,
	"zoho.com":       true,
	"gmx.com":        true,
	"mail.com":       true,
	"yandex.com":     true,
}
