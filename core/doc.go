// Package core contains the client access layer and the credential store
// contract, plus the configuration, error and metrics plumbing shared by the
// other packages. Packages such as transport and store/sql depend on core;
// core must not depend on them.
package core
