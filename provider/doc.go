// Package provider defines the normalized contract between the dispatcher
// and external generation vendors. Requests and responses are unified across
// vendors so downstream logic does not need per-provider branching; vendor
// SDK shapes stay inside the adapter subpackages (gemini, openai, anthropic).
//
// The gemini adapter is the reference implementation covering every
// capability (search grounding, speech, video operations). The openai and
// anthropic adapters serve the plain text categories and report their
// capabilities through Info so the dispatcher can refuse what they cannot do.
package provider
