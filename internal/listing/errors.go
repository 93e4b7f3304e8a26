package listing

import "github.com/rotisserie/eris"

// ErrAllSourcesUnavailable means neither source produced data; the HTTP
// layer maps it to a status:"error" envelope. A single failed source only
// degrades the result and never surfaces here.
var ErrAllSourcesUnavailable = eris.New("listing: all sources unavailable")
