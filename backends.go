package dxgi

// Register the Vulkan provider. The HAL providers register themselves when
// the backend package is imported.
import _ "github.com/gogpu/dxgi/backend/vulkan"
