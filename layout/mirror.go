package layout

// BackOrder 返回背面页的槽位排列：每行内列序反转，行与行之间保持原序。
// 双面打印翻面时页面绕竖直轴镜像——行（纵向）位置不变，列（横向）位置
// 反转，因此正面槽位 k 的卡牌背面要落在同行的镜像列上。
// 性质：对任意满行，BackOrder 复合自身得到恒等排列。
func BackOrder(rows, cols int) []int {
	order := make([]int, 0, rows*cols)
	for row := 0; row < rows; row++ {
		rowStart := row * cols
		for col := cols - 1; col >= 0; col-- {
			order = append(order, rowStart+col)
		}
	}
	return order
}

// BackOrderPartial 返回部分占用网格的背面映射：result[k] 是正面槽位 k
// 的卡牌在背面页上占据的槽位。前 occupied 个行优先槽位视为被占用。
//
// 反转只在每行「被占用的槽位」之间进行，而不是整行反转：末组不满页时，
// 这样能把每行的内容锚定在本行的占用槽位内，不把不完整末行的卡牌甩到
// 相邻槽位上——未占用的槽位在正反两面都保持空白。满页时结果与
// BackOrder 一致。性质：对占用子序列应用两次得到原序。
func BackOrderPartial(rows, cols, occupied int) []int {
	if occupied > rows*cols {
		occupied = rows * cols
	}
	if occupied < 0 {
		occupied = 0
	}

	result := make([]int, occupied)
	for row := 0; row < rows; row++ {
		rowStart := row * cols
		if rowStart >= occupied {
			break
		}
		rowEnd := rowStart + cols
		if rowEnd > occupied {
			rowEnd = occupied
		}
		// 行内占用槽位 [rowStart, rowEnd)，卡牌 k 映射到镜像槽位。
		for k := rowStart; k < rowEnd; k++ {
			result[k] = rowStart + (rowEnd - 1 - k)
		}
	}
	return result
}
