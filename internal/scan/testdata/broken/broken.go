package broken

// +commands:name=broken
type Broken struct{
