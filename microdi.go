// Package microdi is a hierarchical object-graph container.
//
// A Container maps string keys to blueprints, builds dependency graphs on
// demand and caches instances according to each registration's lifetime.
// Containers form a tree: a child resolves through its ancestors, may
// override any of their registrations and is disposed with them.
//
//	root := microdi.New()
//	root.Register("db", NewDB)                       // singleton by default
//	root.Register("repo", NewRepo, microdi.Inject("db"), microdi.Transient())
//
//	req, _ := root.CreateChildContainer()
//	req.RegisterInstance("user", currentUser)
//	repo, err := microdi.Resolve[*Repo](req, "repo")
//	defer req.Dispose()
//
// Lifetimes:
//   - LifetimeSingleton: one instance, cached and built by the container
//     owning the registration.
//   - LifetimeTransient: a new instance on every resolve.
//   - LifetimeSingletonPerContainer: one instance per resolving container.
//   - LifetimeExternal: an instance handed to RegisterInstance.
//
// Argument validation errors carry fixed messages naming the call:
//
//	microdi: error calling Register(key, blueprint). The key argument can not be ''
//	microdi: error calling RegisterInstance(key, instance). The key argument can not be ''
//	microdi: error calling Resolve(key, ...args). The key argument can not be ''
//	microdi: error calling ResolveGroup(groupName). The groupName argument can not be ''
//	microdi: error calling AddResolver(name, resolver). The name argument can not be ''
//	microdi: error calling IsRegistered(key). The key argument can not be ''
//	microdi: error calling InGroup(groupName). The name argument can not be ''
//	microdi: error calling Register(key, blueprint). Provided blueprint for [foo] can not be nil
//	microdi: error calling Register(key, blueprint). Can not register a number instance against key [foo], use RegisterInstance(key, instance)
//
// Every error is an *errs.Error from github.com/xraph/go-utils/errs; compare
// with errors.Is against the Err* sentinels.
package microdi
