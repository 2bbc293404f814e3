package ownership

import "github.com/google/wire"

// ProviderSet shares one registry between the image and album services so
// each can ask about resources owned by the other context.
var ProviderSet = wire.NewSet(
	NewRegistry,
	wire.Bind(new(Registry), new(*DefaultRegistry)),
)
