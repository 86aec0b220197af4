// Package solver drives term enumeration on behalf of callers.
//
// A Run is one enumeration session over a multiset of numbers. Service
// answers one-shot questions about a run (every solution for a target,
// one witness per value in a range, the distinct sub-multisets). Explorer,
// Worker and Session split the same work into batches so a consumer can
// render partial results and abandon a run by bumping its token:
//
//	in, out := make(chan solver.Message), make(chan solver.Batch)
//	go solver.NewWorker(rng, 1000, logger).Serve(ctx, in, out)
//
//	s := solver.NewSession(in, out, rng)
//	if err := s.Start(ctx, numbers); err != nil {
//	    return err
//	}
//	witnesses, err := s.Collect(ctx)
package solver
