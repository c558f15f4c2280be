package reconcile

import "context"

// Run plans or applies job depending on opts.
// Without confirmation, or in dry-run mode, the target is never touched.
func Run(ctx context.Context, job Job, opts Options) (*Plan, error) {
	if opts.Mutates() {
		return job.Apply(ctx, opts)
	}
	return job.Plan(ctx, opts)
}

// ModeOf returns the mode Run will use for opts.
func ModeOf(opts Options) Mode {
	if opts.Mutates() {
		return ModeApply
	}
	return ModePlan
}

// PlanAndApply is a convenience wrapper that plans first and applies only
// when the plan has actions and opts allow mutations. The confirm callback,
// if set, is asked after planning and may veto the apply step.
func PlanAndApply(ctx context.Context, job Job, opts Options, confirm func(*Plan) bool) (plan *Plan, applied *Plan, err error) {
	plan, err = job.Plan(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	if plan.Summary.Total() == 0 || !opts.Mutates() {
		return plan, nil, nil
	}
	if confirm != nil && !confirm(plan) {
		return plan, nil, nil
	}

	applied, err = job.Apply(ctx, opts)
	return plan, applied, err
}
