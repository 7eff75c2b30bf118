// Package authz provides role verifiers for the dispatch permission gate.
//
// A verifier answers one question: does this subject hold every listed
// role? The gate only asks about roles not yet granted for the request,
// so verifiers never see already-memoized roles.
//
// Three implementations are included: Static (in-memory role table),
// Redis (set membership per subject) and DenyAll (the default posture
// when authorization is not configured).
//
//	app, err := mantle.New(
//	    mantle.WithAuthorizer(authz.NewStatic(map[string][]string{
//	        "u1": {"admin", "editor"},
//	    })),
//	    mantle.WithSubjectFunc(func(c mantle.Context) string {
//	        return c.Header("X-User-ID")
//	    }),
//	)
package authz
