package aoi

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
)

var less Less = func(left NodeData, right NodeData) bool {
	return left.(int) < right.(int)
}

var moreThan Less = func(left NodeData, right NodeData) bool {
	return less(right, left)
}

func TestDSortLinkList_Insert(t *testing.T) {

	t.Run("ascending", func(t *testing.T) {
		list, sortedDatas := newList(true, []int{10, 3, 100, 6, 5, 1000, 11}, less)
		checkListContent(t, list, sortedDatas)
	})

	t.Run("descending", func(t *testing.T) {
		list, sortedDatas := newList(false, []int{10, 3, 100, 6, 5, 1000, 11}, moreThan)
		checkListContent(t, list, sortedDatas)
	})
}

func TestDSortLinkList_Remove(t *testing.T) {
	remove := func(t *testing.T, ascending bool) {
		orderStr := ""
		var compare Less
		if ascending {
			orderStr = "ascending"
			compare = less
		} else {
			orderStr = "descending"
			compare = moreThan
		}
		t.Run(fmt.Sprintf("remove-head-%s", orderStr), func(t *testing.T) {
			list, sortedDatas := newList(ascending, []int{10, 3, 100, 6, 5, 1000, 11}, compare)
			checkListContent(t, list, sortedDatas)

			removeHeadDatas := sortedDatas[1:]
			list.Remove(list.nodeAt(0))
			checkListContent(t, list, removeHeadDatas)
		})

		t.Run(fmt.Sprintf("remove-tail-%s", orderStr), func(t *testing.T) {
			list, sortedDatas := newList(ascending, []int{10, 3, 100, 6, 5, 1000, 11}, compare)
			checkListContent(t, list, sortedDatas)

			removeHeadDatas := sortedDatas[:len(sortedDatas)-1]
			list.Remove(list.nodeAt(int(list.count) - 1))
			checkListContent(t, list, removeHeadDatas)
		})

		t.Run(fmt.Sprintf("remove-middle-%s", orderStr), func(t *testing.T) {
			list, sortedDatas := newList(ascending, []int{10, 3, 100, 6, 5, 1000, 11}, compare)
			checkListContent(t, list, sortedDatas)

			i := rand.Intn(len(sortedDatas) - 1)
			i++
			var removeMiddleDatas []int = make([]int, 0, len(sortedDatas)-1)
			for index, v := range sortedDatas {
				if index != i {
					removeMiddleDatas = append(removeMiddleDatas, v)
				}
			}
			t.Log(list.String())
			list.Remove(list.nodeAt(i))
			checkListContent(t, list, removeMiddleDatas)
		})
	}

	remove(t, true)
	remove(t, false)
}

func TestDSortLinkList_ReSort(t *testing.T) {
	modifyDataFunc := func(t *testing.T, ascending bool, index int, value int) {
		compare := less
		if ascending == false {
			compare = moreThan
		}

		list, sortedDatas := newList(ascending, []int{10, 18}, compare)
		checkListContent(t, list, sortedDatas)
		node := list.nodeAt(index)

		sortedDatas[index] = value

		list.Modify(node, value)
		if ascending {
			sort.Ints(sortedDatas)
		} else {
			sort.Sort(sort.Reverse(sort.IntSlice(sortedDatas)))
		}

		checkListContent(t, list, sortedDatas)
	}

	t.Run("backend", func(t *testing.T) {
		t.Run("static", func(t *testing.T) {
			modifyDataFunc(t, true, 1, 20)
			modifyDataFunc(t, true, 1, 30)
			modifyDataFunc(t, true, 1, 40)
			modifyDataFunc(t, true, 1, 1)
		})
	})
	t.Run("forward", func(t *testing.T) {
		modifyDataFunc(t, true, 0, 15)
		modifyDataFunc(t, true, 0, 25)
		modifyDataFunc(t, false, 1, 30)
		modifyDataFunc(t, false, 0, 5)
	})
	t.Run("random", func(t *testing.T) {
		r := rand.New(rand.NewSource(3))
		datas := r.Perm(50)
		list, sorted := newList(true, append([]int(nil), datas...), less)
		for i := 0; i < 200; i++ {
			index := r.Intn(len(sorted))
			value := r.Intn(1000)
			list.Modify(list.nodeAt(index), value)
			sorted[index] = value
			sort.Ints(sorted)
			checkListContent(t, list, sorted)
		}
	})
}

func newList(ascending bool, datas []int, compare Less) (list *DSortLinkList, sortedDatas []int) {
	list = NewDSortLinkList(compare)
	for _, data := range datas {
		node := &Node{
			Data: data,
		}
		list.Insert(node)
	}

	if ascending {
		sort.Ints(datas)
	} else {
		sort.Sort(sort.Reverse(sort.IntSlice(datas)))
	}
	return list, datas

}

func checkListContent(t *testing.T, list *DSortLinkList, datas []int) {
	for index, num := range datas {
		if list.nodeAt(index).Data.(int) != num {
			t.Errorf("list[%d] is %d, should is %d", index, list.nodeAt(index).Data.(int), num)
		}
	}
	ok, errString := checkHeadAndTail(list, datas[0], datas[len(datas)-1])
	if !ok {
		t.Errorf(errString)
	}
}

func checkHeadAndTail(list *DSortLinkList, headVal int, tailVal int) (bool, string) {
	if list.head.Data.(int) != headVal {
		return false, fmt.Sprintf("head(%d) should be %d", list.head.Data.(int), headVal)
	}
	if list.tail.Data.(int) != tailVal {
		return false, fmt.Sprintf("tail(%d) should be %d", list.tail.Data.(int), tailVal)
	}
	return true, ""
}
