package eventbus

import "github.com/google/wire"

// ProviderSet provides the process-wide bus.
var ProviderSet = wire.NewSet(NewBus)
