package kernel

import "strings"

type Email string

// Normalize lowercases and trims the address
func (e Email) Normalize() Email {
	return Email(strings.ToLower(strings.TrimSpace(string(e))))
}

func (e Email) String() string { return string(e) }

// IsValid performs a shallow shape check, full verification happens at sign up
func (e Email) IsValid() bool {
	s := string(e)
	at := strings.LastIndex(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t\n")
}

type FullName string

func (n FullName) String() string { return string(n) }

type JobName string

type Department string

type JobDescription string

// Rupiah is an integer amount in IDR
type Rupiah int64

// PhotoKey is the storage key of a captured profile photo
type PhotoKey string

func (k PhotoKey) String() string { return string(k) }
func (k PhotoKey) IsEmpty() bool  { return string(k) == "" }
