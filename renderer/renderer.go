package renderer

import "github.com/ByLCY/cardforge/layout"

// Renderer 将分页结果输出为最终文件，例如 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(job *layout.PrintJob) ([]byte, error)
}
