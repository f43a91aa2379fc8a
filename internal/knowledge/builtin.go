package knowledge

import (
	"strings"

	"github.com/alexanderramin/coach/internal/domain"
)

// Default returns the built-in registry. It panics if the literal data is
// invalid, which aborts startup before any session exists.
func Default() *Registry {
	return MustRegistry(Builtin())
}

// Builtin returns a fresh copy of the literal knowledge entries.
func Builtin() []Entry {
	return []Entry{
		binarySearch(),
		dynamicProgramming(),
		twoPointers(),
		studyPlan(),
		interview(),
		timeComplexity(),
		dataStructures(),
		problemSolving(),
		capabilities(),
	}
}

func bullets(items ...string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}

func binarySearch() Entry {
	return Entry{
		Topic:       domain.TopicBinarySearch,
		Title:       "Binary Search Algorithm",
		Explanation: "Binary search is an efficient algorithm for searching sorted arrays. It works by repeatedly dividing the search space in half.",
		Facts: []Fact{
			{Label: "Time Complexity", Value: "O(log n)"},
			{Label: "Space Complexity", Value: "O(1)"},
		},
		Tip: "Always remember to check if the array is sorted first!",
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython: {Code: true, Body: `def binary_search(arr, target):
    left, right = 0, len(arr) - 1

    while left <= right:
        mid = (left + right) // 2
        if arr[mid] == target:
            return mid
        elif arr[mid] < target:
            left = mid + 1
        else:
            right = mid - 1

    return -1`},
			domain.VariantJavaScript: {Code: true, Body: `function binarySearch(arr, target) {
  let left = 0, right = arr.length - 1;

  while (left <= right) {
    const mid = Math.floor((left + right) / 2);
    if (arr[mid] === target) return mid;
    if (arr[mid] < target) left = mid + 1;
    else right = mid - 1;
  }

  return -1;
}`},
			domain.VariantJava: {Code: true, Body: `int binarySearch(int[] arr, int target) {
    int left = 0, right = arr.length - 1;

    while (left <= right) {
        int mid = left + (right - left) / 2;
        if (arr[mid] == target) return mid;
        if (arr[mid] < target) left = mid + 1;
        else right = mid - 1;
    }

    return -1;
}`},
			domain.VariantCpp: {Code: true, Body: `int binarySearch(const std::vector<int>& arr, int target) {
    int left = 0, right = static_cast<int>(arr.size()) - 1;

    while (left <= right) {
        int mid = left + (right - left) / 2;
        if (arr[mid] == target) return mid;
        if (arr[mid] < target) left = mid + 1;
        else right = mid - 1;
    }

    return -1;
}`},
		},
	}
}

func dynamicProgramming() Entry {
	return Entry{
		Topic:       domain.TopicDynamicProgramming,
		Title:       "Dynamic Programming (DP)",
		Explanation: "Dynamic Programming is a method for solving complex problems by breaking them down into simpler subproblems.",
		Facts: []Fact{
			{Label: "Approach", Value: "\n1. Define the problem recursively\n2. Identify overlapping subproblems\n3. Store solutions to subproblems\n4. Build up solutions bottom-up"},
			{Label: "Common Examples", Value: "Fibonacci, Longest Common Subsequence, Knapsack Problem"},
		},
		Tip: "Start with the recursive solution, then optimize with memoization or tabulation.",
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython: {Code: true, Body: `from functools import lru_cache

@lru_cache(maxsize=None)
def fib(n):
    if n < 2:
        return n
    return fib(n - 1) + fib(n - 2)`},
			domain.VariantJavaScript: {Code: true, Body: `function fib(n, memo = new Map()) {
  if (n < 2) return n;
  if (memo.has(n)) return memo.get(n);
  const value = fib(n - 1, memo) + fib(n - 2, memo);
  memo.set(n, value);
  return value;
}`},
		},
	}
}

func twoPointers() Entry {
	return Entry{
		Topic:       domain.TopicTwoPointers,
		Title:       "Two Pointers Technique",
		Explanation: "Two pointers technique uses two pointers moving towards each other or in the same direction to solve problems efficiently.",
		Facts: []Fact{
			{Label: "Common Use Cases", Value: "Sorted arrays, palindromes, sum problems, sliding window"},
		},
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython: {Code: true, Body: `def two_sum_sorted(arr, target):
    left, right = 0, len(arr) - 1

    while left < right:
        current_sum = arr[left] + arr[right]
        if current_sum == target:
            return [left, right]
        elif current_sum < target:
            left += 1
        else:
            right -= 1

    return []`},
			domain.VariantJavaScript: {Code: true, Body: `function twoSumSorted(arr, target) {
  let left = 0, right = arr.length - 1;

  while (left < right) {
    const sum = arr[left] + arr[right];
    if (sum === target) return [left, right];
    if (sum < target) left++;
    else right--;
  }

  return [];
}`},
			domain.VariantJava: {Code: true, Body: `int[] twoSumSorted(int[] arr, int target) {
    int left = 0, right = arr.length - 1;

    while (left < right) {
        int sum = arr[left] + arr[right];
        if (sum == target) return new int[]{left, right};
        if (sum < target) left++;
        else right--;
    }

    return new int[0];
}`},
		},
	}
}

func studyPlan() Entry {
	return Entry{
		Topic:       domain.TopicStudyPlan,
		Title:       "📚 LeetCode Study Plans",
		Explanation: "Pick the track that matches where you are today and move up when the problems start to feel routine.",
		Facts: []Fact{
			{Label: "For Beginners", Value: "\n" + bullets(
				"Start with Arrays and Strings",
				"Learn basic sorting algorithms",
				"Practice with easy problems daily",
				"Focus on understanding time complexity",
			)},
			{Label: "For Intermediate", Value: "\n" + bullets(
				"Master Trees and Graphs",
				"Learn Dynamic Programming patterns",
				"Practice medium difficulty problems",
				"Study system design basics",
			)},
			{Label: "For Advanced", Value: "\n" + bullets(
				"Advanced algorithms (segment trees, etc.)",
				"Competitive programming techniques",
				"Hard problems and optimization",
				"System design and scalability",
			)},
		},
		Closing: "Which level matches your current skills?",
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython:     {Body: "Get fluent with `collections` (`deque`, `Counter`, `defaultdict`) and `heapq` early; they cover most medium problems."},
			domain.VariantJavaScript: {Body: "Learn `Map`, `Set` and array methods well, and keep a small min-heap helper handy since the language has none built in."},
			domain.VariantJava:       {Body: "Practice with `ArrayDeque`, `HashMap` and `PriorityQueue`; knowing the Collections API saves a lot of interview time."},
			domain.VariantCpp:        {Body: "Master the STL first: `vector`, `unordered_map`, `priority_queue` and `sort` with custom comparators."},
		},
	}
}

func interview() Entry {
	return Entry{
		Topic:       domain.TopicInterview,
		Title:       "🎯 Coding Interview Preparation",
		Explanation: "Interviews reward clear thinking as much as correct code, so practice both.",
		Facts: []Fact{
			{Label: "Preparation Strategy", Value: "\n" + bullets(
				"Practice coding 1-2 hours daily",
				"Mock interviews with peers",
				"Review fundamental concepts",
				"Learn to explain your thought process",
				"Practice on whiteboard/paper",
			)},
			{Label: "During the Interview", Value: "\n" + bullets(
				"Always clarify the problem first",
				"Think out loud during coding",
				"Start with brute force, then optimize",
				"Test your code with examples",
				"Discuss time and space complexity",
			)},
		},
		Closing: "**Remember:** Practice makes perfect! Start with easy problems and gradually increase difficulty.",
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython:     {Body: "Python keeps solutions short, so spend the saved time narrating edge cases and complexity."},
			domain.VariantJavaScript: {Body: "Say out loud when you rely on `===` versus `==` and how `sort()` compares numbers; interviewers notice."},
			domain.VariantJava:       {Body: "Write method signatures first; the type discipline gives you a natural outline to talk through."},
			domain.VariantCpp:        {Body: "Mention iterator invalidation and integer overflow when they apply; it signals depth."},
		},
	}
}

func timeComplexity() Entry {
	return Entry{
		Topic:       domain.TopicTimeComplexity,
		Title:       "⏰ Time Complexity (Big O) Guide",
		Explanation: "Big O describes how running time grows with input size.",
		Facts: []Fact{
			{Label: "Common Complexities (Best to Worst)", Value: "\n" + bullets(
				"**O(1)** - Constant: Array access, hash table lookup",
				"**O(log n)** - Logarithmic: Binary search, balanced tree operations",
				"**O(n)** - Linear: Simple loops, array traversal",
				"**O(n log n)** - Linearithmic: Efficient sorting (merge sort, quick sort)",
				"**O(n²)** - Quadratic: Nested loops, bubble sort",
				"**O(2^n)** - Exponential: Recursive fibonacci, subset generation",
			)},
			{Label: "💡 Tips", Value: "\n" + bullets(
				"Always aim for the most efficient solution",
				"Consider trade-offs between time and space complexity",
				"Practice analyzing your code's complexity",
			)},
		},
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython:     {Body: "`x in list` is O(n) but `x in set` is O(1) on average; `list.pop(0)` is O(n), use `deque.popleft()`."},
			domain.VariantJavaScript: {Body: "`Array.prototype.includes` is O(n) while `Set.prototype.has` is O(1) average; `shift()` is O(n)."},
			domain.VariantJava:       {Body: "`ArrayList.remove(0)` is O(n); `HashMap.get` is O(1) average and `TreeMap.get` is O(log n)."},
			domain.VariantCpp:        {Body: "`std::map` operations are O(log n), `std::unordered_map` are O(1) average; `vector::erase(begin())` is O(n)."},
		},
	}
}

func dataStructures() Entry {
	return Entry{
		Topic:       domain.TopicDataStructures,
		Title:       "🏗️ Essential Data Structures",
		Explanation: "Choosing the right structure is usually half of the solution.",
		Facts: []Fact{
			{Label: "Arrays", Value: "Contiguous memory locations storing elements of same type. O(1) access, O(n) search."},
			{Label: "Linked lists", Value: "Linear data structure with nodes containing data and pointers. O(1) insertion/deletion at head."},
			{Label: "Trees", Value: "Hierarchical structure with nodes. Binary trees, BST, AVL, etc. Great for searching and sorting."},
			{Label: "Graphs", Value: "Networks of vertices and edges. Used for modeling relationships and pathfinding."},
		},
		Closing: "Which data structure would you like to learn more about?",
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython:     {Body: "`list`, `dict`, `set`, `collections.deque` and `heapq` cover nearly every structure above."},
			domain.VariantJavaScript: {Body: "Arrays double as stacks and queues for small inputs; reach for `Map` and `Set` over plain objects."},
			domain.VariantJava:       {Body: "`ArrayList`, `LinkedList`, `HashMap`, `TreeMap` and `PriorityQueue` map directly onto these."},
			domain.VariantCpp:        {Body: "`vector`, `list`, `map`, `unordered_map`, `set` and `priority_queue` from the STL map onto these."},
		},
	}
}

func problemSolving() Entry {
	return Entry{
		Topic:       domain.TopicProblemSolving,
		Title:       "🎯 Problem-Solving Strategy",
		Explanation: "Work through the same five steps on every problem until they become habit.",
		Facts: []Fact{
			{Label: "1. Understand the Problem", Value: "\n" + bullets(
				"Read carefully and identify inputs/outputs",
				"Look for edge cases and constraints",
				"Ask clarifying questions",
			)},
			{Label: "2. Plan Your Approach", Value: "\n" + bullets(
				"Start with brute force solution",
				"Think about optimizations",
				"Consider different data structures",
			)},
			{Label: "3. Code & Test", Value: "\n" + bullets(
				"Write clean, readable code",
				"Test with given examples",
				"Check edge cases",
			)},
			{Label: "4. Optimize", Value: "\n" + bullets(
				"Analyze time/space complexity",
				"Look for bottlenecks",
				"Consider alternative approaches",
			)},
			{Label: "5. Review & Learn", Value: "\n" + bullets(
				"Understand why your solution works",
				"Learn from other solutions",
				"Practice similar problems",
			)},
		},
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython: {Body: "Prototype the brute force in a few lines, then profile the hot loop before optimizing."},
			domain.VariantJava:   {Body: "Sketch helper methods with clear signatures before filling in bodies."},
		},
	}
}

func capabilities() Entry {
	return Entry{
		Topic:       domain.TopicCapabilities,
		Title:       "🤖 I'm here to help you with:",
		Explanation: bullets(
			"**Algorithm explanations** (binary search, DP, graphs, etc.)",
			"**Data structure guidance** (arrays, trees, hash tables, etc.)",
			"**Problem-solving strategies** and techniques",
			"**Interview preparation** tips and mock questions",
			"**Study plans** tailored to your level",
			"**Code optimization** and complexity analysis",
			"**Debugging** assistance and best practices",
		),
		Closing: "Just ask me anything about coding, algorithms, or LeetCode problems!",
		Snippets: map[domain.Variant]Snippet{
			domain.VariantPython: {Body: "Mention a language (Python, JavaScript, Java or C++) and I'll switch my examples to it."},
		},
	}
}
