package invalid

// +commands:description="no name"
type NoName struct{}

// +commands:name=ok
type Fine struct{}

// +commands:name=x colour=red
type Unknown struct{}

// +commands:name=y stray
type Stray struct{}

// +commands:name='#hash'
type Hashed struct{}
