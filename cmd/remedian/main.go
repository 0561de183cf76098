// Package main implements remedian, a detection/remediation CLI for
// managed endpoints. Detections signal compliance through the process
// exit code; remediations fix the machine and report structured results
// to a central endpoint.
package main

func main() {
	Execute()
}
