package gpufft

import (
	"fmt"
	"unsafe"

	vk "github.com/goki/vulkan"
)

const complex64Size = 8

// allocBuffer creates a host-visible, host-coherent storage buffer sized
// for data and uploads it. Host-visible memory keeps the staging logic
// simple; the batch sizes C5 stages (at most a few thousand windows) don't
// justify a separate device-local copy step.
func (k *VulkanKernel) allocBuffer(data []complex64) (vk.Buffer, vk.DeviceMemory, error) {
	size := vk.DeviceSize(len(data) * complex64Size)
	if size == 0 {
		size = complex64Size
	}

	bufInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        size,
		Usage:       vk.BufferUsageFlags(vk.BufferUsageStorageBufferBit),
		SharingMode: vk.SharingModeExclusive,
	}
	var buf vk.Buffer
	if ret := vk.CreateBuffer(k.device, &bufInfo, nil, &buf); ret != vk.Success {
		return vk.NullBuffer, vk.NullDeviceMemory, fmt.Errorf("%w: create buffer: %d", ErrSubmissionFailure, ret)
	}

	var reqs vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(k.device, buf, &reqs)
	reqs.Deref()

	memType, err := k.findMemoryType(reqs.MemoryTypeBits, vk.MemoryPropertyFlags(
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		vk.DestroyBuffer(k.device, buf, nil)
		return vk.NullBuffer, vk.NullDeviceMemory, err
	}

	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: memType,
	}
	var mem vk.DeviceMemory
	if ret := vk.AllocateMemory(k.device, &allocInfo, nil, &mem); ret != vk.Success {
		vk.DestroyBuffer(k.device, buf, nil)
		return vk.NullBuffer, vk.NullDeviceMemory, fmt.Errorf("%w: allocate memory: %d", ErrSubmissionFailure, ret)
	}
	vk.BindBufferMemory(k.device, buf, mem, 0)

	if len(data) > 0 {
		var mapped unsafe.Pointer
		vk.MapMemory(k.device, mem, 0, size, 0, &mapped)
		dst := unsafe.Slice((*complex64)(mapped), len(data))
		copy(dst, data)
		vk.UnmapMemory(k.device, mem)
	}

	return buf, mem, nil
}

func (k *VulkanKernel) readBuffer(mem vk.DeviceMemory, count int) ([]complex64, error) {
	size := vk.DeviceSize(count * complex64Size)
	var mapped unsafe.Pointer
	if ret := vk.MapMemory(k.device, mem, 0, size, 0, &mapped); ret != vk.Success {
		return nil, fmt.Errorf("%w: map memory: %d", ErrSubmissionFailure, ret)
	}
	defer vk.UnmapMemory(k.device, mem)

	src := unsafe.Slice((*complex64)(mapped), count)
	out := make([]complex64, count)
	copy(out, src)
	return out, nil
}

func (k *VulkanKernel) freeBuffer(buf vk.Buffer, mem vk.DeviceMemory) {
	if buf != vk.NullBuffer {
		vk.DestroyBuffer(k.device, buf, nil)
	}
	if mem != vk.NullDeviceMemory {
		vk.FreeMemory(k.device, mem, nil)
	}
}

func (k *VulkanKernel) findMemoryType(typeBits uint32, properties vk.MemoryPropertyFlags) (uint32, error) {
	var memProps vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(k.physicalDevice, &memProps)
	memProps.Deref()

	for i := uint32(0); i < memProps.MemoryTypeCount; i++ {
		memProps.MemoryTypes[i].Deref()
		if typeBits&(1<<i) == 0 {
			continue
		}
		if vk.MemoryPropertyFlags(memProps.MemoryTypes[i].PropertyFlags)&properties == properties {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no suitable memory type", ErrSubmissionFailure)
}

func (k *VulkanKernel) allocDescriptorSet(bufA, bufB, twiddles vk.Buffer) (vk.DescriptorSet, error) {
	allocInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     k.descPool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{k.descSetLayout},
	}
	sets := make([]vk.DescriptorSet, 1)
	if ret := vk.AllocateDescriptorSets(k.device, &allocInfo, &sets[0]); ret != vk.Success {
		return vk.NullDescriptorSet, fmt.Errorf("%w: allocate descriptor set: %d", ErrSubmissionFailure, ret)
	}

	writeFor := func(binding uint32, buf vk.Buffer) vk.WriteDescriptorSet {
		info := vk.DescriptorBufferInfo{Buffer: buf, Offset: 0, Range: vk.WholeSize}
		return vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          sets[0],
			DstBinding:      binding,
			DescriptorCount: 1,
			DescriptorType:  vk.DescriptorTypeStorageBuffer,
			PBufferInfo:     []vk.DescriptorBufferInfo{info},
		}
	}
	writes := []vk.WriteDescriptorSet{
		writeFor(0, bufA),
		writeFor(1, bufB),
		writeFor(2, twiddles),
	}
	vk.UpdateDescriptorSets(k.device, uint32(len(writes)), writes, 0, nil)
	return sets[0], nil
}

func (k *VulkanKernel) beginCommandBuffer() (vk.CommandBuffer, error) {
	allocInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        k.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cmds := make([]vk.CommandBuffer, 1)
	if ret := vk.AllocateCommandBuffers(k.device, &allocInfo, cmds); ret != vk.Success {
		return nil, fmt.Errorf("%w: allocate command buffer: %d", ErrSubmissionFailure, ret)
	}
	cmd := cmds[0]

	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if ret := vk.BeginCommandBuffer(cmd, &beginInfo); ret != vk.Success {
		return nil, fmt.Errorf("%w: begin command buffer: %d", ErrSubmissionFailure, ret)
	}
	return cmd, nil
}

func (k *VulkanKernel) submitAndWait(cmd vk.CommandBuffer) error {
	if ret := vk.EndCommandBuffer(cmd); ret != vk.Success {
		return fmt.Errorf("%w: end command buffer: %d", ErrSubmissionFailure, ret)
	}
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{cmd},
	}
	if ret := vk.QueueSubmit(k.queue, 1, []vk.SubmitInfo{submitInfo}, vk.NullFence); ret != vk.Success {
		return fmt.Errorf("%w: queue submit: %d", ErrSubmissionFailure, ret)
	}
	if ret := vk.QueueWaitIdle(k.queue); ret != vk.Success {
		return fmt.Errorf("%w: queue wait idle: %d", ErrSubmissionFailure, ret)
	}
	return nil
}
