// Package bootstrap implements the setup gates for the TrustLens
// governance stack: interpreter guard, environment validation, backend
// dependency installation, directory provisioning, and sequential
// initialization of the governance data stores. Each gate reports a
// tagged result; the CLI driver stops at the first failure.
package bootstrap

// Result is the outcome of one bootstrap step.
type Result struct {
	Step   string
	OK     bool
	Detail string
	Err    error // set when the failure must propagate (directory provisioning)
}

func ok(step, detail string) Result {
	return Result{Step: step, OK: true, Detail: detail}
}

func failed(step, detail string) Result {
	return Result{Step: step, Detail: detail}
}
